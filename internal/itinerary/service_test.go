package itinerary

import (
	"strings"
	"testing"
	"time"

	"github.com/susu3304/tabiplan/internal/db"
)

func TestBuildPrompt(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	departAt := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	trip := &db.Trip{
		Name:        "沖縄旅行",
		Destination: "那覇",
		StartDate:   &start,
		EndDate:     &end,
	}
	flights := []db.Flight{
		{Airline: "ANA", FlightNumber: "469", DepartAirport: "HND", ArriveAirport: "OKA", DepartAt: &departAt},
	}
	lodgings := []db.Lodging{
		{Name: "ホテル波の上", CheckIn: &start, CheckOut: &end},
	}
	tours := []db.Tour{
		{Name: "美ら海水族館", ScheduledOn: &start},
	}

	prompt := buildPrompt(trip, flights, lodgings, tours)

	for _, want := range []string{
		"沖縄旅行",
		"那覇",
		"2026-10-01 〜 2026-10-05",
		"ANA469 HND→OKA 2026-10-01 09:30",
		"ホテル波の上",
		"美ら海水族館 (2026-10-01)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("buildPrompt() missing %q in:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptMinimalTrip(t *testing.T) {
	prompt := buildPrompt(&db.Trip{Name: "温泉"}, nil, nil, nil)
	if !strings.Contains(prompt, "温泉") {
		t.Errorf("buildPrompt() missing trip name in:\n%s", prompt)
	}
	for _, unwanted := range []string{"便:", "宿:", "ツアー:"} {
		if strings.Contains(prompt, unwanted) {
			t.Errorf("buildPrompt() should omit empty section %q:\n%s", unwanted, prompt)
		}
	}
}
