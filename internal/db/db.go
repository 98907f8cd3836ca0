package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// Pool exposes the underlying pool for services that run their own queries.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// RunMigrations runs database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS groups (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			discord_guild_id BIGINT,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS group_members (
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			is_guest BOOLEAN NOT NULL DEFAULT FALSE,
			joined_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (group_id, user_id)
		);
		CREATE TABLE IF NOT EXISTS invites (
			code TEXT PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			created_by TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS trips (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			destination TEXT NOT NULL DEFAULT '',
			start_date DATE,
			end_date DATE,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trips_group_id ON trips(group_id);
		CREATE TABLE IF NOT EXISTS trip_channels (
			trip_id BIGINT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
			channel_id TEXT NOT NULL,
			remind_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			next_due_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS flights (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			airline TEXT NOT NULL DEFAULT '',
			flight_number TEXT NOT NULL DEFAULT '',
			depart_airport TEXT NOT NULL DEFAULT '',
			arrive_airport TEXT NOT NULL DEFAULT '',
			depart_at TIMESTAMPTZ,
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			payers TEXT[],
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flights_trip_id ON flights(trip_id);
		CREATE TABLE IF NOT EXISTS lodgings (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			name TEXT NOT NULL DEFAULT '',
			location_url TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			check_in DATE,
			check_out DATE,
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			payers TEXT[],
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_lodgings_trip_id ON lodgings(trip_id);
		CREATE TABLE IF NOT EXISTS tours (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			name TEXT NOT NULL DEFAULT '',
			location_url TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			scheduled_on DATE,
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			payers TEXT[],
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_tours_trip_id ON tours(trip_id);
	`)
	return err
}
