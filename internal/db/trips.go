package db

import (
	"context"
	"fmt"
	"time"
)

type Trip struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"group_id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Notes       string     `json:"notes"`
}

// TripChannel links a trip to a Discord channel for reminder posts.
type TripChannel struct {
	TripID        int64      `json:"trip_id"`
	ChannelID     string     `json:"channel_id"`
	RemindEnabled bool       `json:"remind_enabled"`
	NextDueAt     *time.Time `json:"next_due_at,omitempty"`
}

func (db *DB) CreateTrip(ctx context.Context, t *Trip) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO trips (group_id, name, destination, start_date, end_date, notes)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		t.GroupID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Notes,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) GetTrip(ctx context.Context, tripID int64) (*Trip, error) {
	var t Trip
	err := db.pool.QueryRow(ctx,
		"SELECT id, group_id, name, destination, start_date, end_date, notes FROM trips WHERE id = $1",
		tripID,
	).Scan(&t.ID, &t.GroupID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.Notes)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (db *DB) UpdateTrip(ctx context.Context, t *Trip) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE trips SET name = $2, destination = $3, start_date = $4, end_date = $5, notes = $6
         WHERE id = $1`,
		t.ID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Notes,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found")
	}
	return nil
}

func (db *DB) DeleteTrip(ctx context.Context, tripID int64) error {
	result, err := db.pool.Exec(ctx, "DELETE FROM trips WHERE id = $1", tripID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found")
	}
	return nil
}

func (db *DB) ListTrips(ctx context.Context, groupID int64) ([]Trip, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, group_id, name, destination, start_date, end_date, notes
         FROM trips WHERE group_id = $1
         ORDER BY start_date NULLS LAST, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.GroupID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.Notes); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (db *DB) LinkTripChannel(ctx context.Context, tripID int64, channelID string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO trip_channels (trip_id, channel_id)
         VALUES ($1, $2)
         ON CONFLICT (trip_id) DO UPDATE SET channel_id = EXCLUDED.channel_id, remind_enabled = TRUE`,
		tripID, channelID,
	)
	return err
}

// DueTripReminders returns linked trips whose reminder is due: the trip
// starts within the next week and the channel has not been notified in the
// last day.
func (db *DB) DueTripReminders(ctx context.Context, now time.Time) ([]TripChannel, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT tc.trip_id, tc.channel_id, tc.remind_enabled, tc.next_due_at
         FROM trip_channels tc
         JOIN trips t ON t.id = tc.trip_id
         WHERE tc.remind_enabled
           AND t.start_date IS NOT NULL
           AND t.start_date BETWEEN $1::date AND ($1::date + INTERVAL '7 days')
           AND (tc.next_due_at IS NULL OR tc.next_due_at <= $1)`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []TripChannel
	for rows.Next() {
		var tc TripChannel
		if err := rows.Scan(&tc.TripID, &tc.ChannelID, &tc.RemindEnabled, &tc.NextDueAt); err != nil {
			return nil, err
		}
		due = append(due, tc)
	}
	return due, rows.Err()
}

// MarkTripReminded pushes the channel's next reminder a day out.
func (db *DB) MarkTripReminded(ctx context.Context, tripID int64, now time.Time) error {
	next := now.Add(24 * time.Hour)
	_, err := db.pool.Exec(ctx,
		"UPDATE trip_channels SET next_due_at = $2 WHERE trip_id = $1",
		tripID, next,
	)
	return err
}
