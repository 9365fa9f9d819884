package profile

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulse/internal/types"
)

func TestSetUsername_Validation(t *testing.T) {
	svc := NewService(nil) // validation rejects before the store is touched

	tests := []struct {
		name     string
		username string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("x", maxUsernameLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.SetUsername(context.Background(), "u1", tt.username); err != ErrBadRequest {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestSetLocation_Validation(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name string
		loc  types.Location
	}{
		{"empty address", types.Location{Address: "", Latitude: 1, Longitude: 2}},
		{"latitude out of range", types.Location{Address: "a", Latitude: 91, Longitude: 0}},
		{"longitude out of range", types.Location{Address: "a", Latitude: 0, Longitude: -181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.SetLocation(context.Background(), "u1", tt.loc); err != ErrBadRequest {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("PULSE_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("PULSE_TEST_DB_DSN not set; skipping DB-backed profile tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS profiles (
            uid        TEXT PRIMARY KEY,
            username   TEXT NOT NULL DEFAULT '',
            address    TEXT NOT NULL DEFAULT '',
            lat        DOUBLE PRECISION NOT NULL DEFAULT 0,
            lng        DOUBLE PRECISION NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL
        )`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE profiles"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewStore(db)
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "u1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for fresh user, got %v", err)
	}

	if err := svc.SetUsername(ctx, "u1", "ada"); err != nil {
		t.Fatalf("set username: %v", err)
	}
	loc := types.Location{Address: "123 Main St, City", Latitude: 1.5, Longitude: -2.5}
	if err := svc.SetLocation(ctx, "u1", loc); err != nil {
		t.Fatalf("set location: %v", err)
	}

	p, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Username != "ada" {
		t.Errorf("username = %q", p.Username)
	}
	if p.Address != loc.Address || p.Latitude != loc.Latitude || p.Longitude != loc.Longitude {
		t.Errorf("location mismatch: %+v", p)
	}
	if !p.HasLocation() {
		t.Error("HasLocation should be true")
	}

	// Relocating overwrites in place.
	if err := svc.SetLocation(ctx, "u1", types.Location{Address: "B", Latitude: 3, Longitude: 4}); err != nil {
		t.Fatalf("relocate: %v", err)
	}
	p, _ = svc.Get(ctx, "u1")
	if p.Address != "B" || p.Username != "ada" {
		t.Errorf("relocate clobbered fields: %+v", p)
	}
}
