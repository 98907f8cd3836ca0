package itinerary

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/susu3304/tabiplan/internal/db"
)

// Service drafts a day-by-day itinerary from the trip's booked flights,
// lodgings, and tours. The output is plain text for the trip page; it is a
// starting point for editing, not a schedule of record.
type Service struct {
	client *openai.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		client: openai.NewClient(apiKey),
	}
}

func (s *Service) Generate(ctx context.Context, trip *db.Trip, flights []db.Flight, lodgings []db.Lodging, tours []db.Tour) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "あなたは旅行プランナーです。予約済みの便・宿・ツアーをもとに、日ごとの旅程案を簡潔な日本語で作成してください。予約と矛盾する提案はしないでください。",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(trip, flights, lodgings, tours),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(trip *db.Trip, flights []db.Flight, lodgings []db.Lodging, tours []db.Tour) string {
	var b strings.Builder

	fmt.Fprintf(&b, "旅行: %s\n", trip.Name)
	if trip.Destination != "" {
		fmt.Fprintf(&b, "行き先: %s\n", trip.Destination)
	}
	if trip.StartDate != nil && trip.EndDate != nil {
		fmt.Fprintf(&b, "期間: %s 〜 %s\n", trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"))
	}
	if trip.Notes != "" {
		fmt.Fprintf(&b, "メモ: %s\n", trip.Notes)
	}

	if len(flights) > 0 {
		b.WriteString("\n便:\n")
		for _, f := range flights {
			fmt.Fprintf(&b, "- %s%s %s→%s", f.Airline, f.FlightNumber, f.DepartAirport, f.ArriveAirport)
			if f.DepartAt != nil {
				fmt.Fprintf(&b, " %s", f.DepartAt.Format("2006-01-02 15:04"))
			}
			b.WriteString("\n")
		}
	}
	if len(lodgings) > 0 {
		b.WriteString("\n宿:\n")
		for _, l := range lodgings {
			fmt.Fprintf(&b, "- %s", l.Name)
			if l.CheckIn != nil && l.CheckOut != nil {
				fmt.Fprintf(&b, " (%s 〜 %s)", l.CheckIn.Format("2006-01-02"), l.CheckOut.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}
	if len(tours) > 0 {
		b.WriteString("\nツアー:\n")
		for _, t := range tours {
			fmt.Fprintf(&b, "- %s", t.Name)
			if t.ScheduledOn != nil {
				fmt.Fprintf(&b, " (%s)", t.ScheduledOn.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
