package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another request is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis serializes bookings per cosmetologist across API instances. The
// in-database row locks protect a single instance; this protects the whole
// validate-then-insert sequence when several instances share the store.
type Redis struct {
	client  *redis.Client
	ttl     time.Duration
	retry   time.Duration
	timeout time.Duration
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client:  client,
		ttl:     5 * time.Second,
		retry:   50 * time.Millisecond,
		timeout: 2 * time.Second,
	}
}

// Acquire blocks until the key is taken or the acquisition window runs out.
// The returned func releases the lock.
func (l *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseScript.Run(context.Background(), l.client, []string{key}, token)
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, httperr.ErrBusinessMsg(
				"slot_conflict",
				"Another booking for this cosmetologist is in progress. Please try again.",
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
