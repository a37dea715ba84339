// Package cache persists completed quiz sessions to a durable key-value
// store and reconstructs them for the history views.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
)

// keyPrefix matches the record key scheme: userScore_<email>_<unixNano>.
const keyPrefix = "userScore_"

// ErrKeyNotFound is returned by KeyValueStore implementations for missing keys.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore abstracts durable string-keyed storage so the cache can run
// against Redis in production and an in-memory map in tests.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ResultCache stores one record per (email, timestamp), so repeated sessions
// by the same user accumulate instead of overwriting each other.
type ResultCache struct {
	kv  KeyValueStore
	now func() time.Time
}

func New(kv KeyValueStore) *ResultCache {
	return &ResultCache{kv: kv, now: time.Now}
}

// NewWithClock is test-only for deterministic keys.
func NewWithClock(kv KeyValueStore, now func() time.Time) *ResultCache {
	return &ResultCache{kv: kv, now: now}
}

// Persist writes the record under a key unique to this session. TotalScore
// is recomputed from the results before writing so it cannot drift.
func (c *ResultCache) Persist(ctx context.Context, record domain.SessionRecord) error {
	record.TotalScore = record.Score()
	if record.Timestamp.IsZero() {
		record.Timestamp = c.now()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	key := keyPrefix + record.User.Email + "_" + strconv.FormatInt(record.Timestamp.UnixNano(), 10)
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// ListAll enumerates every persisted session, most recent first. A corrupt
// entry is skipped so one bad record cannot make the rest unreadable; any
// storage failure degrades to an empty listing.
func (c *ResultCache) ListAll(ctx context.Context) []domain.SessionRecord {
	keys, err := c.kv.Keys(ctx, keyPrefix)
	if err != nil {
		log.Printf("list session records: %v", err)
		return nil
	}

	records := make([]domain.SessionRecord, 0, len(keys))
	for _, key := range keys {
		value, err := c.kv.Get(ctx, key)
		if err != nil {
			log.Printf("read session record %s: %v", key, err)
			continue
		}
		var record domain.SessionRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			log.Printf("decode session record %s: %v", key, err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records
}

// LatestScoreFor is a read view over the history log: the most recent
// session for one email, if any.
func (c *ResultCache) LatestScoreFor(ctx context.Context, email string) (domain.SessionRecord, bool) {
	for _, record := range c.ListAll(ctx) {
		if record.User.Email == email {
			return record, true
		}
	}
	return domain.SessionRecord{}, false
}
