package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/logging"
	"github.com/emmett/conlang/internal/phonology"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newStore(t *testing.T, cfg Config) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(cfg, logging.Discard())
	s.now = clock.Now
	return s, clock
}

func newSynth(t *testing.T) *phonology.Synthesizer {
	t.Helper()
	synth, err := phonology.New(phonology.DefaultConfig(), phonology.WithSeed(1))
	if err != nil {
		t.Fatalf("phonology.New error: %v", err)
	}
	return synth
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newStore(t, Config{})
	synth := newSynth(t)

	sess, err := s.Create(synth)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("id %q is not a UUID: %v", sess.ID, err)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != sess || got.Synthesizer() != synth {
		t.Error("Get returned a different session")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t, Config{})
	sess, _ := s.Create(newSynth(t))

	if !s.Delete(sess.ID) {
		t.Fatal("Delete returned false for existing session")
	}
	if s.Delete(sess.ID) {
		t.Error("Delete returned true twice")
	}
	if _, err := s.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v", err)
	}
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	s, _ := newStore(t, Config{MaxSessions: 2})
	synth := newSynth(t)

	a, _ := s.Create(synth)
	b, _ := s.Create(synth)
	if _, err := s.Get(a.ID); err != nil {
		t.Fatalf("Get(a) error: %v", err)
	}
	c, _ := s.Create(synth)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("least recently used session survived: %v", err)
	}
	for _, id := range []string{a.ID, c.ID} {
		if _, err := s.Get(id); err != nil {
			t.Errorf("Get(%s) error: %v", id, err)
		}
	}
	if len(s.sessions) != 2 {
		t.Errorf("index holds %d sessions, want 2", len(s.sessions))
	}
}

func TestIdleExpiry(t *testing.T) {
	s, clock := newStore(t, Config{TTL: time.Minute})
	synth := newSynth(t)

	stale, _ := s.Create(synth)
	clock.Advance(45 * time.Second)
	fresh, _ := s.Create(synth)
	clock.Advance(30 * time.Second)

	if _, err := s.Get(stale.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session returned: %v", err)
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Errorf("fresh session error: %v", err)
	}

	// Get refreshed fresh; it survives another 50s.
	clock.Advance(50 * time.Second)
	if n := s.Sweep(clock.Now()); n != 0 {
		t.Errorf("Sweep removed %d, want 0", n)
	}
	clock.Advance(20 * time.Second)
	if n := s.Sweep(clock.Now()); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestNoExpiryWithoutTTL(t *testing.T) {
	s, clock := newStore(t, Config{})
	sess, _ := s.Create(newSynth(t))
	clock.Advance(24 * time.Hour)
	if n := s.Sweep(clock.Now()); n != 0 {
		t.Errorf("Sweep removed %d without TTL", n)
	}
	if _, err := s.Get(sess.ID); err != nil {
		t.Errorf("Get error: %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newStore(t, Config{TTL: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSessionDoKeepsState(t *testing.T) {
	s, _ := newStore(t, Config{})
	sess, _ := s.Create(newSynth(t))

	err := sess.Do(func(st *State) error {
		st.Grammar = &grammar.Grammar{WordOrder: []string{"SUBJ", "VERB", "OBJ"}}
		return nil
	})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}

	sess.Do(func(st *State) error {
		if st.Grammar == nil || st.Grammar.WordOrder[1] != "VERB" {
			t.Error("grammar not kept between Do calls")
		}
		if st.Synth == nil {
			t.Error("synthesizer missing")
		}
		return nil
	})

	wantErr := errors.New("boom")
	if err := sess.Do(func(*State) error { return wantErr }); err != wantErr {
		t.Errorf("Do error = %v, want %v", err, wantErr)
	}
}
