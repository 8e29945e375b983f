// Package redis provides a Redis-backed dispatch number sequence for
// deployments that share numbering across ledger databases.
//
// Unlike the sequence table, an increment here is not rolled back with the
// ledger transaction, so a failed dispatch leaves a gap in that day's
// numbers. Numbers stay unique and increasing.
package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "fulfillment:dispatch-seq:"
	DefaultTTL       = 35 * 24 * time.Hour
	scanBatch        = 256
)

// nextScript increments the window counter and sets its expiry on first use.
var nextScript = redis.NewScript(`
local value = redis.call('INCR', KEYS[1])
if value == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return value
`)

type DispatchSequence struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*DispatchSequence)

func WithKeyPrefix(prefix string) Option {
	return func(s *DispatchSequence) {
		s.prefix = prefix
	}
}

// WithTTL sets how long a day counter outlives its first increment.
func WithTTL(ttl time.Duration) Option {
	return func(s *DispatchSequence) {
		s.ttl = ttl
	}
}

func NewDispatchSequence(client redis.UniversalClient, opts ...Option) *DispatchSequence {
	s := &DispatchSequence{client: client, prefix: DefaultKeyPrefix, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DispatchSequence) Next(ctx context.Context, window string) (int64, error) {
	if strings.TrimSpace(window) == "" {
		return 0, errs.NewValueIsRequiredError("window")
	}

	seconds := int64(s.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	return nextScript.Run(ctx, s.client, []string{s.prefix + window}, seconds).Int64()
}

// PruneBefore deletes counters of windows strictly before window. Expiry
// normally removes them first; this covers counters created without a TTL.
func (s *DispatchSequence) PruneBefore(ctx context.Context, window string) (int64, error) {
	if strings.TrimSpace(window) == "" {
		return 0, errs.NewValueIsRequiredError("window")
	}

	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, err
		}

		stale := make([]string, 0, len(keys))
		for _, key := range keys {
			if strings.TrimPrefix(key, s.prefix) < window {
				stale = append(stale, key)
			}
		}
		if len(stale) > 0 {
			n, delErr := s.client.Del(ctx, stale...).Result()
			if delErr != nil {
				return removed, delErr
			}
			removed += n
		}

		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

// Peek returns the current counter of a window without incrementing it.
func (s *DispatchSequence) Peek(ctx context.Context, window string) (int64, error) {
	raw, err := s.client.Get(ctx, s.prefix+window).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}
