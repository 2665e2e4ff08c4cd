package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/fairyhunter13/order-ticket-bot/internal/model"
)

// PebbleStore keeps claim state in an embedded Pebble database so that
// a restarted process still rejects claims on already-claimed cards.
type PebbleStore struct {
	mu sync.Mutex
	db *pebble.DB
}

// NewPebble opens (or creates) the database under dir.
func NewPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func encodeState(st model.CardState) ([]byte, error) { return json.Marshal(st) }

func decodeState(val []byte) (model.CardState, error) {
	var st model.CardState
	if err := json.Unmarshal(val, &st); err != nil {
		return model.CardState{}, err
	}
	return st, nil
}

func (s *PebbleStore) get(cardID string) (model.CardState, bool, error) {
	v, closer, err := s.db.Get([]byte(cardID))
	if err == pebble.ErrNotFound {
		return model.CardState{}, false, nil
	}
	if err != nil {
		return model.CardState{}, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	st, err := decodeState(v)
	if err != nil {
		return model.CardState{}, false, err
	}
	return st, true, nil
}

func (s *PebbleStore) set(cardID string, st model.CardState) error {
	b, err := encodeState(st)
	if err != nil {
		return err
	}
	if err := s.db.Set([]byte(cardID), b, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (s *PebbleStore) PutCard(cardID, summary string) error {
	if cardID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok, err := s.get(cardID); err != nil {
		return err
	} else if ok {
		return nil
	}
	return s.set(cardID, model.CardState{Summary: summary})
}

func (s *PebbleStore) Get(cardID string) (model.CardState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(cardID)
}

func (s *PebbleStore) TryClaim(cardID, userID string) (model.CardState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _, err := s.get(cardID)
	if err != nil {
		return model.CardState{}, false, err
	}
	if st.Claimed {
		return st, false, nil
	}
	st.Claimed = true
	st.ClaimedBy = userID
	st.ClaimedAt = time.Now().UTC()
	if err := s.set(cardID, st); err != nil {
		return model.CardState{}, false, err
	}
	return st, true, nil
}
