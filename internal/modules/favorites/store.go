// README: Favorites store backed by Redis; one JSON array per user, rewritten whole.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"pulse/internal/types"
)

const storageKeyPrefix = "saved_locations:%s"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Load returns the persisted list for a user. A missing key yields an empty
// list, and so does a malformed value (logged, never surfaced).
func (s *Store) Load(ctx context.Context, uid types.ID) ([]SavedLocation, error) {
	val, err := s.redis.Get(ctx, storageKey(uid)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var locs []SavedLocation
	if err := json.Unmarshal([]byte(val), &locs); err != nil {
		log.Printf("favorites: discarding malformed value for %s: %v", uid, err)
		return nil, nil
	}
	return locs, nil
}

// Replace overwrites the whole list. There is no per-entry update primitive;
// every mutation is a full read-modify-write.
func (s *Store) Replace(ctx context.Context, uid types.ID, locs []SavedLocation) error {
	data, err := json.Marshal(locs)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, storageKey(uid), data, 0).Err()
}

func storageKey(uid types.ID) string {
	return fmt.Sprintf(storageKeyPrefix, string(uid))
}
