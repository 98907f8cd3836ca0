package bot

import (
	"testing"
	"time"

	"github.com/susu3304/tabiplan/internal/db"
)

func TestUpcomingTrip(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	soon := now.AddDate(0, 0, 3)
	later := now.AddDate(0, 1, 0)

	tests := []struct {
		name  string
		trips []db.Trip
		want  int64
	}{
		{
			name: "first trip that has not started yet",
			trips: []db.Trip{
				{ID: 1, StartDate: &past},
				{ID: 2, StartDate: &soon},
				{ID: 3, StartDate: &later},
			},
			want: 2,
		},
		{
			name: "all trips in the past falls back to the last",
			trips: []db.Trip{
				{ID: 1, StartDate: &past},
				{ID: 2, StartDate: &past},
			},
			want: 2,
		},
		{
			name: "undated trips fall back to the last",
			trips: []db.Trip{
				{ID: 1},
				{ID: 2},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upcomingTrip(tt.trips, now)
			if got.ID != tt.want {
				t.Errorf("upcomingTrip() = trip %d, want %d", got.ID, tt.want)
			}
		})
	}
}
