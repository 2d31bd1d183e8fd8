package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/logging"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/session"
	"github.com/emmett/conlang/internal/vocabulary"
)

const (
	// MaxWordsPerRequest bounds Words and streaming requests
	MaxWordsPerRequest = 1000
	// MaxVocabularySize bounds Vocabulary requests
	MaxVocabularySize = 10000
)

// LanguageInfo describes a newly created language
type LanguageInfo struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phonemes          []string  `json:"phonemes"`
	SyllableStructure []string  `json:"syllable_structure"`
	ExampleWords      []string  `json:"example_words"`
	CreatedAt         time.Time `json:"created_at"`
}

// Translation is the result of replacing each input token with a fresh
// generated word. It carries no meaning.
type Translation struct {
	Original    string            `json:"original"`
	Translated  string            `json:"translated"`
	WordMapping map[string]string `json:"word_mapping"`
}

// InventoryInfo lists a language's phonemes with their features
type InventoryInfo struct {
	ID                string              `json:"id"`
	Inventory         phonology.Inventory `json:"inventory"`
	SyllableStructure []string            `json:"syllable_structure"`
	MaxSyllables      int                 `json:"max_syllables"`
}

// Service creates languages and answers requests about them. It is shared by
// the HTTP, gRPC and MCP front ends.
type Service struct {
	cfg   *config.Config
	log   *logging.Logger
	store *session.Store

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService validates the language configuration and starts the session
// sweeper. Call Close to stop it.
func NewService(cfg *config.Config, log *logging.Logger) (*Service, error) {
	if _, err := phonology.New(cfg.PhonologyConfig()); err != nil {
		return nil, err
	}

	store := session.NewStore(session.Config{
		TTL:         cfg.Session.TTL,
		MaxSessions: cfg.Session.MaxSessions,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:    cfg,
		log:    log,
		store:  store,
		cancel: cancel,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		store.Run(ctx, cfg.Session.SweepInterval)
	}()

	return s, nil
}

// Close stops the session sweeper
func (s *Service) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

// Sessions returns the number of live languages
func (s *Service) Sessions() int {
	return s.store.Len()
}

// CreateLanguage builds a synthesizer from the configured phonology and
// stores it under a fresh id
func (s *Service) CreateLanguage(ctx context.Context) (*LanguageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	synth, err := phonology.New(s.cfg.PhonologyConfig())
	if err != nil {
		return nil, err
	}

	examples := make([]string, 0, s.cfg.Session.ExampleWords)
	for i := 0; i < s.cfg.Session.ExampleWords; i++ {
		w, err := synth.GenerateWord(1)
		if err != nil {
			return nil, fmt.Errorf("failed to generate example word: %w", err)
		}
		examples = append(examples, w)
	}

	sess, err := s.store.Create(synth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.log.Infof("created language %s", sess.ID)

	return &LanguageInfo{
		ID:                sess.ID,
		Name:              s.cfg.Language.Name,
		Phonemes:          synth.Symbols(),
		SyllableStructure: synth.Templates(),
		ExampleWords:      examples,
		CreatedAt:         sess.CreatedAt,
	}, nil
}

// DeleteLanguage forgets a language. Unknown ids return session.ErrNotFound.
func (s *Service) DeleteLanguage(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.store.Delete(id) {
		return session.ErrNotFound
	}
	s.log.Infof("deleted language %s", id)
	return nil
}

// Translate lowercases text, splits it on whitespace and generates one word
// per token. When a token repeats, the mapping keeps its last word.
func (s *Service) Translate(ctx context.Context, id, text string) (*Translation, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(cases.Lower(language.Und).String(strings.TrimSpace(text)))
	words := make([]string, len(tokens))
	mapping := make(map[string]string, len(tokens))

	err = sess.Do(func(st *session.State) error {
		for i, tok := range tokens {
			w, err := st.Synth.GenerateWord(1)
			if err != nil {
				return err
			}
			words[i] = w
			mapping[tok] = w
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Translation{
		Original:    text,
		Translated:  strings.Join(words, " "),
		WordMapping: mapping,
	}, nil
}

// Words generates count words of at least minSyllables syllables
func (s *Service) Words(ctx context.Context, id string, count, minSyllables int) ([]string, error) {
	if count < 1 || count > MaxWordsPerRequest {
		return nil, &phonology.InvalidParameterError{
			Param:  "count",
			Value:  count,
			Reason: fmt.Sprintf("must be between 1 and %d", MaxWordsPerRequest),
		}
	}

	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, count)
	err = sess.Do(func(st *session.State) error {
		for i := 0; i < count; i++ {
			w, err := st.Synth.GenerateWord(minSyllables)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Validate reports whether word uses only the language's phonemes
func (s *Service) Validate(ctx context.Context, id, word string) (bool, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return false, err
	}
	return sess.Synthesizer().IsValidWord(word), nil
}

// Inventory returns the language's phonemes with features
func (s *Service) Inventory(ctx context.Context, id string) (*InventoryInfo, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	synth := sess.Synthesizer()
	return &InventoryInfo{
		ID:                id,
		Inventory:         synth.Inventory(),
		SyllableStructure: synth.Templates(),
		MaxSyllables:      synth.MaxSyllables(),
	}, nil
}

// Grammar returns the language's grammar, generating it on first use
func (s *Service) Grammar(ctx context.Context, id string) (*grammar.Grammar, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	var g *grammar.Grammar
	err = sess.Do(func(st *session.State) error {
		if st.Grammar == nil {
			st.Grammar = grammar.NewGenerator(s.cfg.GrammarConfig(), globalRand{}).Generate()
		}
		g = st.Grammar
		return nil
	})
	return g, err
}

// Vocabulary returns a vocabulary of size base entries, generating it on
// first use or when a different size is asked for. A non-positive size uses
// the configured size. With inflect set, every entry is replaced by its
// inflected variants.
func (s *Service) Vocabulary(ctx context.Context, id string, size int, inflect bool) (vocabulary.Vocabulary, error) {
	if size <= 0 {
		size = s.cfg.Vocabulary.InitialSize
	}
	if size > MaxVocabularySize {
		return nil, &phonology.InvalidParameterError{
			Param:  "size",
			Value:  size,
			Reason: fmt.Sprintf("must be at most %d", MaxVocabularySize),
		}
	}

	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	var vocab vocabulary.Vocabulary
	err = sess.Do(func(st *session.State) error {
		gen := vocabulary.NewGenerator(s.cfg.VocabularyConfig(), st.Synth)
		if st.Vocabulary == nil || st.VocabularySize != size {
			v, err := gen.Generate(size)
			if err != nil {
				return err
			}
			st.Vocabulary = v
			st.VocabularySize = size
		}
		vocab = st.Vocabulary
		if inflect {
			vocab = gen.Expand(vocab, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vocab, nil
}

func (s *Service) lookup(ctx context.Context, id string) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Get(id)
}

// globalRand adapts the goroutine-safe top-level math/rand/v2 functions
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
