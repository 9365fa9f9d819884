// README: Pulse store backed by PostgreSQL; bounding-box prefilter for geosearch.
package pulse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Pulse) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO pulses (id, author_id, body, address, lat, lng, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(p.ID),
		string(p.AuthorID),
		p.Body,
		p.Address,
		p.Latitude, p.Longitude,
		p.CreatedAt,
	)
	return err
}

// ListInBox returns the newest pulses inside a lat/lng envelope. Callers refine
// with the exact distance; the box only narrows the scan.
func (s *Store) ListInBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, limit int) ([]Pulse, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, author_id, body, address, lat, lng, created_at
        FROM pulses
        WHERE lat BETWEEN $1 AND $2
          AND lng BETWEEN $3 AND $4
        ORDER BY created_at DESC
        LIMIT $5`,
		minLat, maxLat, minLng, maxLng, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pulse
	for rows.Next() {
		var p Pulse
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
