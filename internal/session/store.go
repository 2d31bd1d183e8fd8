package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"

	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/logging"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/vocabulary"
)

// ErrNotFound is returned for unknown, evicted or expired session ids
var ErrNotFound = errors.New("language not found")

// Session is one generated language held in memory between requests
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	synth      *phonology.Synthesizer
	grammar    *grammar.Grammar
	vocabulary vocabulary.Vocabulary
	vocabSize  int

	// guarded by Store.mu
	lastUsed time.Time
}

// State is the mutable part of a session, reachable only inside Do
type State struct {
	Synth      *phonology.Synthesizer
	Grammar    *grammar.Grammar
	Vocabulary vocabulary.Vocabulary
	// VocabularySize is the size Vocabulary was generated for
	VocabularySize int
}

// Do runs fn with exclusive access to the session state. Changes fn makes
// to Grammar and Vocabulary are kept.
func (s *Session) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{
		Synth:          s.synth,
		Grammar:        s.grammar,
		Vocabulary:     s.vocabulary,
		VocabularySize: s.vocabSize,
	}
	err := fn(st)
	s.grammar = st.Grammar
	s.vocabulary = st.Vocabulary
	s.vocabSize = st.VocabularySize
	return err
}

// Synthesizer returns the session's word synthesizer. The synthesizer is
// safe for concurrent use on its own.
func (s *Session) Synthesizer() *phonology.Synthesizer {
	return s.synth
}

// Config controls session lifetime
type Config struct {
	// TTL is the idle time after which a session expires; zero disables expiry
	TTL time.Duration
	// MaxSessions bounds the store; zero means unbounded
	MaxSessions int
}

// Store keeps sessions in memory, evicting the least recently used one at
// capacity and expiring idle ones
type Store struct {
	config Config
	log    *logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	cache    *lru.Cache
	sessions map[string]*Session
}

// NewStore creates an empty store
func NewStore(config Config, log *logging.Logger) *Store {
	s := &Store{
		config:   config,
		log:      log,
		now:      time.Now,
		cache:    lru.New(config.MaxSessions),
		sessions: make(map[string]*Session),
	}
	s.cache.OnEvicted = func(key lru.Key, value interface{}) {
		id := key.(string)
		delete(s.sessions, id)
		s.log.Debugf("session %s evicted", id)
	}
	return s
}

// Create stores a new session around synth and returns it
func (s *Store) Create(synth *phonology.Synthesizer) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:        id.String(),
		CreatedAt: now,
		synth:     synth,
		lastUsed:  now,
	}
	s.sessions[sess.ID] = sess
	s.cache.Add(sess.ID, sess)
	return sess, nil
}

// Get returns the session for id and marks it as used
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess := v.(*Session)

	now := s.now()
	if s.expired(sess, now) {
		s.cache.Remove(id)
		return nil, ErrNotFound
	}
	sess.lastUsed = now
	return sess, nil
}

// Delete removes a session, reporting whether it existed
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	s.cache.Remove(id)
	return true
}

// Len returns the number of stored sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Sweep removes every session idle longer than the TTL and returns how many
// were removed
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			s.cache.Remove(id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.config.TTL > 0 && now.Sub(sess.lastUsed) > s.config.TTL
}

// Run sweeps expired sessions every interval until ctx is cancelled
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.config.TTL <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Infof("expired %d idle sessions", n)
			}
		}
	}
}
