// Package repo holds origin persistence for the drive-time assistant.
// OriginRepo has two implementations: an in-process map (the default) and a
// Postgres table for deployments that must survive restarts.
// No business logic lives here, only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/drivetime/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OriginRepo stores each user's current origin.
type OriginRepo interface {
	// Set replaces the user's origin unconditionally (last write wins).
	Set(ctx context.Context, userID string, loc domain.LocationRef) error

	// Get returns the user's origin. found is false for users that never set
	// one; err is reserved for storage failures.
	Get(ctx context.Context, userID string) (rec domain.OriginRecord, found bool, err error)
}

// pgOriginRepo is the Postgres implementation of OriginRepo.
type pgOriginRepo struct {
	db db
}

// NewPostgresOriginRepo constructs an OriginRepo backed by the origins table.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresOriginRepo(db db) OriginRepo {
	return &pgOriginRepo{db: db}
}

// Set upserts the user's row. The whole row is rewritten so a coordinates
// origin never keeps a stale address from an earlier preset, or vice versa.
func (r *pgOriginRepo) Set(ctx context.Context, userID string, loc domain.LocationRef) error {
	const q = `
		INSERT INTO origins (user_id, kind, latitude, longitude, address, place_id)
		VALUES (@user_id, @kind, @latitude, @longitude, @address, @place_id)
		ON CONFLICT (user_id) DO UPDATE
		SET kind       = EXCLUDED.kind,
		    latitude   = EXCLUDED.latitude,
		    longitude  = EXCLUDED.longitude,
		    address    = EXCLUDED.address,
		    place_id   = EXCLUDED.place_id,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"user_id":  userID,
		"kind":     loc.Kind.String(),
		"address":  loc.Text,
		"place_id": loc.PlaceID,
	}
	// Address origins have no coordinates; store NULL rather than 0,0.
	if loc.Kind == domain.KindAddress {
		args["latitude"], args["longitude"] = nil, nil
	} else {
		args["latitude"], args["longitude"] = loc.Lat, loc.Lng
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.OriginRepo.Set: %w", err)
	}
	return nil
}

// Get reads the user's row.
func (r *pgOriginRepo) Get(ctx context.Context, userID string) (domain.OriginRecord, bool, error) {
	const q = `
		SELECT user_id, kind, latitude, longitude, address, place_id, updated_at
		FROM origins
		WHERE user_id = @user_id`

	rec, err := scanOrigin(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.OriginRecord{}, false, nil
	}
	if err != nil {
		return domain.OriginRecord{}, false, fmt.Errorf("repo.OriginRepo.Get: %w", err)
	}
	return rec, true, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanOrigin maps one origins row into a domain.OriginRecord, converting
// the nullable coordinate columns and the kind string.
func scanOrigin(s scanner) (domain.OriginRecord, error) {
	var (
		rec      domain.OriginRecord
		kind     string
		lat, lng pgtype.Float8
	)

	err := s.Scan(&rec.UserID, &kind, &lat, &lng, &rec.Location.Text, &rec.Location.PlaceID, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OriginRecord{}, domain.ErrNotFound
		}
		return domain.OriginRecord{}, err
	}

	rec.Location.Kind, err = domain.ParseLocationKind(kind)
	if err != nil {
		return domain.OriginRecord{}, err
	}
	if lat.Valid && lng.Valid {
		rec.Location.Lat, rec.Location.Lng = lat.Float64, lng.Float64
	}
	return rec, nil
}
