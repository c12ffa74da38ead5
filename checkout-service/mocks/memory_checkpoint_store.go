package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// MemoryCheckpointStore is a domain.CheckpointStore and domain.CheckpointJournal
// held in memory. Checkpoints are stored as JSON, like the real stores do.
type MemoryCheckpointStore struct {
	mu      sync.Mutex
	current map[string][]byte
	journal map[string][][]byte
	clears  map[string]int
}

func NewMemoryCheckpointStore() *MemoryCheckpointStore {
	return &MemoryCheckpointStore{
		current: make(map[string][]byte),
		journal: make(map[string][][]byte),
		clears:  make(map[string]int),
	}
}

func (s *MemoryCheckpointStore) Save(_ context.Context, checkpoint *domain.Checkpoint) error {
	raw, err := json.Marshal(checkpoint)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[checkpoint.SessionKey] = raw
	// version 1 starts a new run of the key
	if checkpoint.Version <= 1 {
		s.journal[checkpoint.SessionKey] = nil
	}
	s.journal[checkpoint.SessionKey] = append(s.journal[checkpoint.SessionKey], raw)
	return nil
}

func (s *MemoryCheckpointStore) Load(_ context.Context, sessionKey string) (*domain.Checkpoint, error) {
	s.mu.Lock()
	raw, ok := s.current[sessionKey]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return decode(raw)
}

func (s *MemoryCheckpointStore) Clear(_ context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.current, sessionKey)
	s.clears[sessionKey]++
	return nil
}

func (s *MemoryCheckpointStore) History(_ context.Context, sessionKey string, limit int) ([]*domain.Checkpoint, error) {
	s.mu.Lock()
	entries := append([][]byte(nil), s.journal[sessionKey]...)
	s.mu.Unlock()

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]*domain.Checkpoint, 0, len(entries))
	for _, raw := range entries {
		cp, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Put seeds a checkpoint without journaling it
func (s *MemoryCheckpointStore) Put(checkpoint *domain.Checkpoint) {
	raw, err := json.Marshal(checkpoint)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[checkpoint.SessionKey] = raw
}

// Stages returns the stage of every checkpoint saved for the session, in order
func (s *MemoryCheckpointStore) Stages(sessionKey string) []domain.ActionStage {
	history, _ := s.History(context.Background(), sessionKey, 0)
	stages := make([]domain.ActionStage, 0, len(history))
	for _, cp := range history {
		stages = append(stages, cp.RetryState.Stage)
	}
	return stages
}

// Cleared reports how many times the session's checkpoint was cleared
func (s *MemoryCheckpointStore) Cleared(sessionKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears[sessionKey]
}

func decode(raw []byte) (*domain.Checkpoint, error) {
	var cp domain.Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
