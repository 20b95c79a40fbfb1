package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smukkama/weather-advisor/pkg/config"
)

// Journal records which local dates already had their advisory sent, so
// a re-invoked run (e.g. a cron retry) does not email twice. Entries
// expire on their own; nothing else is stored here.
type Journal struct {
	redis *redis.Client
}

// sentTTL keeps a sent marker long enough to cover any plausible retry
// window and then lets it expire.
const sentTTL = 48 * time.Hour

// New connects a journal to Redis.
func New(cfg config.RedisConfig) *Journal {
	return &Journal{
		redis: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewWithClient wraps an existing Redis client, for tests.
func NewWithClient(client *redis.Client) *Journal {
	return &Journal{redis: client}
}

func sentKey(localDate string) string {
	return fmt.Sprintf("advisory_sent:%s", localDate)
}

// AlreadySent reports whether an advisory for the given local date was
// already delivered.
func (j *Journal) AlreadySent(ctx context.Context, localDate string) (bool, error) {
	_, err := j.redis.Get(ctx, sentKey(localDate)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read sent marker from Redis: %w", err)
	}
	return true, nil
}

// MarkSent records that the given local date's advisory went out, keyed
// to the run that sent it.
func (j *Journal) MarkSent(ctx context.Context, localDate, runID string) error {
	if err := j.redis.Set(ctx, sentKey(localDate), runID, sentTTL).Err(); err != nil {
		return fmt.Errorf("failed to set sent marker in Redis: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (j *Journal) Close() error {
	return j.redis.Close()
}
