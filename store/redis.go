package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ojusave/rtms-perplexity/types"
)

// Redis persists action items as a JSON list per meeting with a TTL, so a
// restarted process can recover the session's items.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the given URL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "connect to redis")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func itemsKey(meetingUUID string) string {
	return "actionitems:" + meetingUUID
}

// Save appends the item to the meeting's list and refreshes the TTL.
func (r *Redis) Save(ctx context.Context, meetingUUID string, item types.ActionItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return errors.Wrap(err, "marshal action item")
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, itemsKey(meetingUUID), data)
	pipe.Expire(ctx, itemsKey(meetingUUID), r.ttl)
	_, err = pipe.Exec(ctx)
	return errors.Wrap(err, "persist action item")
}

// List returns the meeting's saved items in insertion order.
func (r *Redis) List(ctx context.Context, meetingUUID string) ([]types.ActionItem, error) {
	vals, err := r.client.LRange(ctx, itemsKey(meetingUUID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "load action items")
	}
	items := make([]types.ActionItem, 0, len(vals))
	for _, v := range vals {
		var item types.ActionItem
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			return nil, errors.Wrap(err, "decode action item")
		}
		items = append(items, item)
	}
	return items, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
