package db

import (
	"context"
	"fmt"
	"time"
)

// Payers is nil for rows that predate payer tracking (stored as SQL NULL,
// meaning "everyone") and an empty slice when every payer was removed by a
// user. The cost engine treats the two differently, so the distinction has
// to survive storage and JSON intact.

type Flight struct {
	ID            int64      `json:"id"`
	TripID        int64      `json:"trip_id"`
	Airline       string     `json:"airline"`
	FlightNumber  string     `json:"flight_number"`
	DepartAirport string     `json:"depart_airport"`
	ArriveAirport string     `json:"arrive_airport"`
	DepartAt      *time.Time `json:"depart_at,omitempty"`
	Cost          float64    `json:"cost"`
	Payers        []string   `json:"payers"`
}

type Lodging struct {
	ID          int64      `json:"id"`
	TripID      int64      `json:"trip_id"`
	Name        string     `json:"name"`
	LocationURL string     `json:"location_url"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	CheckIn     *time.Time `json:"check_in,omitempty"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	Cost        float64    `json:"cost"`
	Payers      []string   `json:"payers"`
}

type Tour struct {
	ID          int64      `json:"id"`
	TripID      int64      `json:"trip_id"`
	Name        string     `json:"name"`
	LocationURL string     `json:"location_url"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	ScheduledOn *time.Time `json:"scheduled_on,omitempty"`
	Cost        float64    `json:"cost"`
	Payers      []string   `json:"payers"`
}

func (db *DB) CreateFlight(ctx context.Context, f *Flight) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO flights (trip_id, airline, flight_number, depart_airport, arrive_airport, depart_at, cost, payers)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id`,
		f.TripID, f.Airline, f.FlightNumber, f.DepartAirport, f.ArriveAirport, f.DepartAt, f.Cost, f.Payers,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) UpdateFlight(ctx context.Context, f *Flight) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE flights SET airline = $3, flight_number = $4, depart_airport = $5, arrive_airport = $6, depart_at = $7, cost = $8, payers = $9
         WHERE id = $1 AND trip_id = $2`,
		f.ID, f.TripID, f.Airline, f.FlightNumber, f.DepartAirport, f.ArriveAirport, f.DepartAt, f.Cost, f.Payers,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("flight not found")
	}
	return nil
}

func (db *DB) DeleteFlight(ctx context.Context, tripID, flightID int64) error {
	result, err := db.pool.Exec(ctx, "DELETE FROM flights WHERE id = $1 AND trip_id = $2", flightID, tripID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("flight not found")
	}
	return nil
}

func (db *DB) ListFlights(ctx context.Context, tripID int64) ([]Flight, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, trip_id, airline, flight_number, depart_airport, arrive_airport, depart_at, cost, payers
         FROM flights WHERE trip_id = $1 ORDER BY depart_at NULLS LAST, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var f Flight
		if err := rows.Scan(&f.ID, &f.TripID, &f.Airline, &f.FlightNumber, &f.DepartAirport, &f.ArriveAirport, &f.DepartAt, &f.Cost, &f.Payers); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (db *DB) CreateLodging(ctx context.Context, l *Lodging) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO lodgings (trip_id, name, location_url, lat, lng, check_in, check_out, cost, payers)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id`,
		l.TripID, l.Name, l.LocationURL, l.Lat, l.Lng, l.CheckIn, l.CheckOut, l.Cost, l.Payers,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) UpdateLodging(ctx context.Context, l *Lodging) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE lodgings SET name = $3, location_url = $4, lat = $5, lng = $6, check_in = $7, check_out = $8, cost = $9, payers = $10
         WHERE id = $1 AND trip_id = $2`,
		l.ID, l.TripID, l.Name, l.LocationURL, l.Lat, l.Lng, l.CheckIn, l.CheckOut, l.Cost, l.Payers,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lodging not found")
	}
	return nil
}

func (db *DB) DeleteLodging(ctx context.Context, tripID, lodgingID int64) error {
	result, err := db.pool.Exec(ctx, "DELETE FROM lodgings WHERE id = $1 AND trip_id = $2", lodgingID, tripID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lodging not found")
	}
	return nil
}

func (db *DB) ListLodgings(ctx context.Context, tripID int64) ([]Lodging, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, trip_id, name, location_url, lat, lng, check_in, check_out, cost, payers
         FROM lodgings WHERE trip_id = $1 ORDER BY check_in NULLS LAST, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lodgings []Lodging
	for rows.Next() {
		var l Lodging
		if err := rows.Scan(&l.ID, &l.TripID, &l.Name, &l.LocationURL, &l.Lat, &l.Lng, &l.CheckIn, &l.CheckOut, &l.Cost, &l.Payers); err != nil {
			return nil, err
		}
		lodgings = append(lodgings, l)
	}
	return lodgings, rows.Err()
}

func (db *DB) CreateTour(ctx context.Context, t *Tour) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO tours (trip_id, name, location_url, lat, lng, scheduled_on, cost, payers)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id`,
		t.TripID, t.Name, t.LocationURL, t.Lat, t.Lng, t.ScheduledOn, t.Cost, t.Payers,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) UpdateTour(ctx context.Context, t *Tour) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE tours SET name = $3, location_url = $4, lat = $5, lng = $6, scheduled_on = $7, cost = $8, payers = $9
         WHERE id = $1 AND trip_id = $2`,
		t.ID, t.TripID, t.Name, t.LocationURL, t.Lat, t.Lng, t.ScheduledOn, t.Cost, t.Payers,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour not found")
	}
	return nil
}

func (db *DB) DeleteTour(ctx context.Context, tripID, tourID int64) error {
	result, err := db.pool.Exec(ctx, "DELETE FROM tours WHERE id = $1 AND trip_id = $2", tourID, tripID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour not found")
	}
	return nil
}

func (db *DB) ListTours(ctx context.Context, tripID int64) ([]Tour, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, trip_id, name, location_url, lat, lng, scheduled_on, cost, payers
         FROM tours WHERE trip_id = $1 ORDER BY scheduled_on NULLS LAST, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []Tour
	for rows.Next() {
		var t Tour
		if err := rows.Scan(&t.ID, &t.TripID, &t.Name, &t.LocationURL, &t.Lat, &t.Lng, &t.ScheduledOn, &t.Cost, &t.Payers); err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}
