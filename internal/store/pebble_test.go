package store

import (
	"sync"
	"sync/atomic"
	"testing"
)

func openPebble(t *testing.T, dir string) *PebbleStore {
	t.Helper()
	s, err := NewPebble(dir)
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	return s
}

func TestPebbleClaimSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s := openPebble(t, dir)
	if err := s.PutCard("m1", "Mug: 2 x 10 = 20"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, won, err := s.TryClaim("m1", "u1"); err != nil || !won {
		t.Fatalf("claim: won=%v err=%v", won, err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A new handle over the same directory simulates a restart.
	s2 := openPebble(t, dir)
	defer s2.Close()
	st, ok, err := s2.Get("m1")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if !st.Claimed || st.ClaimedBy != "u1" || st.Summary != "Mug: 2 x 10 = 20" {
		t.Fatalf("state lost across reopen: %+v", st)
	}
	if _, won, _ := s2.TryClaim("m1", "u2"); won {
		t.Fatalf("claim after restart must be rejected")
	}
}

func TestPebbleTryClaimConcurrent(t *testing.T) {
	s := openPebble(t, t.TempDir())
	defer s.Close()
	_ = s.PutCard("m1", "summary")
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, won, _ := s.TryClaim("m1", "u"); won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("expected exactly 1 winning claim, got %d", wins.Load())
	}
}

func TestPebbleGetMissing(t *testing.T) {
	s := openPebble(t, t.TempDir())
	defer s.Close()
	if _, ok, err := s.Get("nope"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}
