package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

const DefaultAvailabilityTTL = 30 * time.Second

// setIfCurrent writes KEYS[1] only while the version counter in KEYS[2] still equals
// ARGV[2]; an absent counter reads as 0.
var setIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}

	return &AvailabilityCache{client: client, ttl: ttl}
}

func AvailabilityKey(eventID uuid.UUID) string {
	return fmt.Sprintf("availability:%s", eventID.String())
}

func VersionKey(eventID uuid.UUID) string {
	return fmt.Sprintf("availability:%s:version", eventID.String())
}

func (c *AvailabilityCache) Get(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	raw, err := c.client.Get(ctx, AvailabilityKey(eventID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var availability domain.Availability
	if err := json.Unmarshal([]byte(raw), &availability); err != nil {
		return nil, fmt.Errorf("decode cached availability: %w", err)
	}

	return &availability, nil
}

func (c *AvailabilityCache) Version(ctx context.Context, eventID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, VersionKey(eventID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}

	return version, nil
}

// Set caches availability read at version. The write is dropped when an Invalidate
// happened in between, so a value loaded before a commit never outlives it.
func (c *AvailabilityCache) Set(ctx context.Context, availability *domain.Availability, version int64) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return err
	}

	keys := []string{AvailabilityKey(availability.EventID), VersionKey(availability.EventID)}
	stored, err := setIfCurrent.Run(ctx, c.client, keys, string(data), strconv.FormatInt(version, 10), c.ttl.Milliseconds()).Int64()
	if err != nil {
		return err
	}

	if stored == 0 {
		slog.Debug("Skipped caching superseded availability", "event_id", availability.EventID, "version", version)
	}

	return nil
}

// Invalidate bumps the version before deleting so in-flight reads cannot repopulate
// the key with what they loaded earlier.
func (c *AvailabilityCache) Invalidate(ctx context.Context, eventID uuid.UUID) error {
	bumpErr := c.client.Incr(ctx, VersionKey(eventID)).Err()
	delErr := c.client.Del(ctx, AvailabilityKey(eventID)).Err()

	return errors.Join(bumpErr, delErr)
}
