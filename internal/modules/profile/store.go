// README: Profile store backed by PostgreSQL.
package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, uid types.ID) (*Profile, error) {
	row := s.db.QueryRow(ctx, `
        SELECT uid, username, address, lat, lng, updated_at
        FROM profiles
        WHERE uid = $1`, string(uid),
	)

	var p Profile
	err := row.Scan(&p.UID, &p.Username, &p.Address, &p.Latitude, &p.Longitude, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpsertUsername(ctx context.Context, uid types.ID, username string, now time.Time) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO profiles (uid, username, address, lat, lng, updated_at)
        VALUES ($1, $2, '', 0, 0, $3)
        ON CONFLICT (uid) DO UPDATE
        SET username = EXCLUDED.username,
            updated_at = EXCLUDED.updated_at`,
		string(uid), username, now,
	)
	return err
}

func (s *Store) UpsertLocation(ctx context.Context, uid types.ID, loc types.Location, now time.Time) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO profiles (uid, username, address, lat, lng, updated_at)
        VALUES ($1, '', $2, $3, $4, $5)
        ON CONFLICT (uid) DO UPDATE
        SET address = EXCLUDED.address,
            lat = EXCLUDED.lat,
            lng = EXCLUDED.lng,
            updated_at = EXCLUDED.updated_at`,
		string(uid), loc.Address, loc.Latitude, loc.Longitude, now,
	)
	return err
}
