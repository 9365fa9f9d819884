package favorites

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pulse/internal/types"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewService(NewStore(rdb)), mr
}

func home(lat, lng float64) types.Location {
	return types.Location{Address: "somewhere", Latitude: lat, Longitude: lng}
}

func TestLoad_NothingPersisted(t *testing.T) {
	svc, _ := newTestService(t)
	locs, err := svc.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(locs) != 0 {
		t.Errorf("expected empty list, got %d entries", len(locs))
	}
}

func TestLoad_MalformedValueTreatedAsEmpty(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Set("saved_locations:u1", "{not json")

	locs, err := svc.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(locs) != 0 {
		t.Errorf("expected empty list for malformed value, got %d", len(locs))
	}
}

func TestSave_LimitReached(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, label := range []string{"Home", "Work", "Gym"} {
		if err := svc.Save(ctx, "u1", label, home(1, 2)); err != nil {
			t.Fatalf("save %s: %v", label, err)
		}
	}
	if err := svc.Save(ctx, "u1", "Cafe", home(1, 2)); err != ErrLimitReached {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	locs, _ := svc.Load(ctx, "u1")
	if len(locs) != 3 {
		t.Errorf("stored list length = %d, want 3", len(locs))
	}
}

func TestSave_DuplicateLabelCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, "u1", "Home", home(1, 2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Save(ctx, "u1", "home", home(3, 4)); err != ErrDuplicateLabel {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
	locs, _ := svc.Load(ctx, "u1")
	if len(locs) != 1 || locs[0].Latitude != 1 {
		t.Errorf("stored list changed: %+v", locs)
	}
}

func TestSave_EmptyLabelRejected(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Save(context.Background(), "u1", "  ", home(1, 2)); err != ErrBadRequest {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestRename_SelfLabelIsNoOpOnContent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, "u1", "Home", home(1, 2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Rename(ctx, "u1", "Home", "HOME"); err != nil {
		t.Fatalf("rename to own label: %v", err)
	}
	locs, _ := svc.Load(ctx, "u1")
	if len(locs) != 1 {
		t.Fatalf("list length changed: %d", len(locs))
	}
	if locs[0].Label != "HOME" {
		t.Errorf("label casing not updated: %q", locs[0].Label)
	}
	if locs[0].Latitude != 1 || locs[0].Longitude != 2 {
		t.Errorf("location content changed: %+v", locs[0])
	}
}

func TestRename_CollisionWithOtherEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_ = svc.Save(ctx, "u1", "Home", home(1, 2))
	_ = svc.Save(ctx, "u1", "Work", home(3, 4))
	if err := svc.Rename(ctx, "u1", "Work", "hOmE"); err != ErrDuplicateLabel {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestRename_UnknownLabel(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Rename(context.Background(), "u1", "Nowhere", "Somewhere"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_ = svc.Save(ctx, "u1", "Home", home(1, 2))
	_ = svc.Save(ctx, "u1", "Work", home(3, 4))
	if err := svc.Delete(ctx, "u1", "Home"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	locs, _ := svc.Load(ctx, "u1")
	if len(locs) != 1 || locs[0].Label != "Work" {
		t.Errorf("unexpected remainder: %+v", locs)
	}
}

func TestDelete_UnknownLabelIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_ = svc.Save(ctx, "u1", "Home", home(1, 2))
	if err := svc.Delete(ctx, "u1", "Gone"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	locs, _ := svc.Load(ctx, "u1")
	if len(locs) != 1 {
		t.Errorf("list changed on no-op delete: %+v", locs)
	}
}

func TestLoad_OverfullPersistedListAcceptedAsIs(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Set("saved_locations:u1",
		`[{"label":"a"},{"label":"b"},{"label":"c"},{"label":"d"}]`)

	locs, err := svc.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(locs) != 4 {
		t.Errorf("expected corrupted 4-entry list preserved on load, got %d", len(locs))
	}
	// Save-time enforcement still applies.
	if err := svc.Save(context.Background(), "u1", "e", home(0, 0)); err != ErrLimitReached {
		t.Errorf("expected ErrLimitReached on save, got %v", err)
	}
}
