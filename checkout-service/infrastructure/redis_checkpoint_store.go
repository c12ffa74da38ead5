package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

const (
	// DefaultCheckpointTTL bounds how long an abandoned checkpoint is kept
	DefaultCheckpointTTL = 24 * time.Hour
	maxJournalEntries    = 100
	maxSaveAttempts      = 3
)

// RedisCheckpointStore implements CheckpointStore and CheckpointJournal on
// Redis. Checkpoints and their journal expire after the TTL. A version 1 write
// starts a new run of the session key and resets its journal.
type RedisCheckpointStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCheckpointStore(client *redis.Client, ttl time.Duration) *RedisCheckpointStore {
	if ttl <= 0 {
		ttl = DefaultCheckpointTTL
	}
	return &RedisCheckpointStore{client: client, ttl: ttl}
}

// Save writes the checkpoint under an optimistic lock on its key. A checkpoint
// older than the stored one is refused with ErrCheckpointConflict.
func (s *RedisCheckpointStore) Save(ctx context.Context, checkpoint *domain.Checkpoint) error {
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return errors.Wrap(err, "failed to marshal checkpoint")
	}
	key := checkpointKey(checkpoint.SessionKey)
	journal := journalKey(checkpoint.SessionKey)

	write := func(tx *redis.Tx) error {
		current, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != nil && current.Version >= checkpoint.Version {
			return errors.Wrapf(domain.ErrCheckpointConflict, "session %s version %d", checkpoint.SessionKey, checkpoint.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			if checkpoint.Version <= 1 {
				pipe.Del(ctx, journal)
			}
			pipe.RPush(ctx, journal, data)
			pipe.LTrim(ctx, journal, -maxJournalEntries, -1)
			pipe.Expire(ctx, journal, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		err = s.client.Watch(ctx, write, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrCheckpointConflict) {
			return err
		}
		return errors.Wrap(err, "failed to save checkpoint")
	}
	return nil
}

// Load returns nil, nil when the session has no checkpoint
func (s *RedisCheckpointStore) Load(ctx context.Context, sessionKey string) (*domain.Checkpoint, error) {
	return s.get(ctx, s.client, checkpointKey(sessionKey))
}

// Clear removes the checkpoint; the journal expires on its own
func (s *RedisCheckpointStore) Clear(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, checkpointKey(sessionKey)).Err(); err != nil {
		return errors.Wrap(err, "failed to clear checkpoint")
	}
	return nil
}

// History returns the journal of the latest run of the session, oldest first
func (s *RedisCheckpointStore) History(ctx context.Context, sessionKey string, limit int) ([]*domain.Checkpoint, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	entries, err := s.client.LRange(ctx, journalKey(sessionKey), start, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read checkpoint journal")
	}

	checkpoints := make([]*domain.Checkpoint, 0, len(entries))
	for _, entry := range entries {
		var cp domain.Checkpoint
		if err := json.Unmarshal([]byte(entry), &cp); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal journal entry")
		}
		checkpoints = append(checkpoints, &cp)
	}
	return checkpoints, nil
}

// getter is satisfied by both the client and a watched transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisCheckpointStore) get(ctx context.Context, c getter, key string) (*domain.Checkpoint, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load checkpoint")
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal checkpoint")
	}
	return &cp, nil
}

func checkpointKey(sessionKey string) string {
	return fmt.Sprintf("checkout:checkpoint:%s", sessionKey)
}

func journalKey(sessionKey string) string {
	return fmt.Sprintf("checkout:journal:%s", sessionKey)
}
