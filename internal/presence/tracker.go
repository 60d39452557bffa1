package presence

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

const keyPrefix = "presence:"

// Tracker records user liveness in redis. Each authenticated request
// refreshes a per-user key with a TTL; a user is online while the key
// exists. A nil client disables tracking, every user reads as offline.
type Tracker struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewTracker(client rueidis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

func (t *Tracker) Touch(ctx context.Context, userID string) error {
	if t == nil || t.client == nil {
		return nil
	}

	cmd := t.client.B().Set().
		Key(keyPrefix + userID).
		Value("1").
		ExSeconds(int64(t.ttl.Seconds())).
		Build()
	return t.client.Do(ctx, cmd).Error()
}

func (t *Tracker) Online(ctx context.Context, userIDs []string) (map[string]bool, error) {
	online := make(map[string]bool, len(userIDs))
	if t == nil || t.client == nil {
		return online, nil
	}

	for _, id := range userIDs {
		cmd := t.client.B().Exists().Key(keyPrefix + id).Build()
		n, err := t.client.Do(ctx, cmd).AsInt64()
		if err != nil {
			return nil, err
		}
		online[id] = n > 0
	}
	return online, nil
}
