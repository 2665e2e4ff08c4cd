// Package store persists per-card claim state keyed by the order
// message's ID.
package store

import (
	"sync"
	"time"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
)

// ClaimStore is the claim-state backend. PutCard registers a freshly
// rendered card; TryClaim flips it to claimed exactly once.
type ClaimStore interface {
	PutCard(cardID, summary string) error
	Get(cardID string) (model.CardState, bool, error)
	// TryClaim is a compare-and-set: it returns true only for the one
	// caller that transitions the card from unclaimed to claimed.
	TryClaim(cardID, userID string) (model.CardState, bool, error)
	Close() error
}

// MemoryStore is the default in-process backend. Claim state kept here
// does not survive a restart.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]model.CardState
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{m: make(map[string]model.CardState)}
}

func (s *MemoryStore) PutCard(cardID, summary string) error {
	if cardID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[cardID]; ok {
		return nil
	}
	s.m[cardID] = model.CardState{Summary: summary}
	return nil
}

func (s *MemoryStore) Get(cardID string) (model.CardState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[cardID]
	return st, ok, nil
}

func (s *MemoryStore) TryClaim(cardID, userID string) (model.CardState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[cardID]
	if !ok {
		st = model.CardState{}
	}
	if st.Claimed {
		return st, false, nil
	}
	st.Claimed = true
	st.ClaimedBy = userID
	st.ClaimedAt = time.Now().UTC()
	s.m[cardID] = st
	return st, true, nil
}

func (s *MemoryStore) Close() error { return nil }
