package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/vocabulary"
)

// Config represents the application configuration
type Config struct {
	// Language settings
	Language struct {
		Name string `yaml:"name"`
	} `yaml:"language"`

	// Phonology settings
	Phonology struct {
		Consonants        string   `yaml:"consonants"`
		Vowels            string   `yaml:"vowels"`
		SyllableStructure []string `yaml:"syllable_structure"`
		MaxSyllables      int      `yaml:"max_syllables"`
	} `yaml:"phonology"`

	// Grammar settings
	Grammar struct {
		WordOrder      string `yaml:"word_order"`
		Alignment      string `yaml:"alignment"`
		MorphologyType string `yaml:"morphology_type"`
	} `yaml:"grammar"`

	// Vocabulary settings
	Vocabulary struct {
		InitialSize  int                `yaml:"initial_size"`
		Distribution map[string]float64 `yaml:"distribution"`
	} `yaml:"vocabulary"`

	// Server settings
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		GRPCPort        int           `yaml:"grpc_port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	// Session settings
	Session struct {
		TTL           time.Duration `yaml:"ttl"`
		MaxSessions   int           `yaml:"max_sessions"`
		SweepInterval time.Duration `yaml:"sweep_interval"`
		ExampleWords  int           `yaml:"example_words"`
	} `yaml:"session"`

	// Log settings
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Language defaults
	cfg.Language.Name = "NewLang"

	// Phonology defaults
	ph := phonology.DefaultConfig()
	cfg.Phonology.Consonants = ph.Consonants
	cfg.Phonology.Vowels = ph.Vowels
	cfg.Phonology.SyllableStructure = ph.SyllableStructure
	cfg.Phonology.MaxSyllables = ph.MaxSyllables

	// Grammar defaults
	gr := grammar.DefaultConfig()
	cfg.Grammar.WordOrder = gr.WordOrder
	cfg.Grammar.Alignment = gr.Alignment
	cfg.Grammar.MorphologyType = gr.MorphologyType

	// Vocabulary defaults
	vc := vocabulary.DefaultConfig()
	cfg.Vocabulary.InitialSize = vc.Size
	cfg.Vocabulary.Distribution = vc.Distribution

	// Server defaults
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9000
	cfg.Server.GRPCPort = 0
	cfg.Server.ShutdownTimeout = 10 * time.Second

	// Session defaults
	cfg.Session.TTL = 30 * time.Minute
	cfg.Session.MaxSessions = 1024
	cfg.Session.SweepInterval = time.Minute
	cfg.Session.ExampleWords = 5

	// Log defaults
	cfg.Log.Level = "info"
	cfg.Log.File = ""

	return cfg
}

// PhonologyConfig returns the phonology section as synthesizer settings
func (c *Config) PhonologyConfig() phonology.Config {
	return phonology.Config{
		Consonants:        c.Phonology.Consonants,
		Vowels:            c.Phonology.Vowels,
		SyllableStructure: append([]string(nil), c.Phonology.SyllableStructure...),
		MaxSyllables:      c.Phonology.MaxSyllables,
	}
}

// GrammarConfig returns the grammar section as generator settings
func (c *Config) GrammarConfig() grammar.Config {
	return grammar.Config{
		WordOrder:      c.Grammar.WordOrder,
		Alignment:      c.Grammar.Alignment,
		MorphologyType: c.Grammar.MorphologyType,
	}
}

// VocabularyConfig returns the vocabulary section as generator settings
func (c *Config) VocabularyConfig() vocabulary.Config {
	dist := make(map[string]float64, len(c.Vocabulary.Distribution))
	for pos, share := range c.Vocabulary.Distribution {
		dist[pos] = share
	}
	return vocabulary.Config{
		Size:         c.Vocabulary.InitialSize,
		Distribution: dist,
	}
}

// Validate checks the settings that are not owned by a domain package.
// Phonology is validated when a synthesizer is constructed from it.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("server.grpc_port %d out of range", c.Server.GRPCPort)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must not be negative")
	}
	if c.Session.MaxSessions < 0 {
		return fmt.Errorf("session.max_sessions must not be negative")
	}
	if c.Session.ExampleWords < 0 {
		return fmt.Errorf("session.example_words must not be negative")
	}
	if c.Vocabulary.InitialSize < 0 {
		return fmt.Errorf("vocabulary.initial_size must not be negative")
	}
	var total float64
	for pos, share := range c.Vocabulary.Distribution {
		if share < 0 {
			return fmt.Errorf("vocabulary.distribution.%s must not be negative", pos)
		}
		total += share
	}
	if total > 1.0+1e-9 {
		return fmt.Errorf("vocabulary.distribution sums to %.3f, want at most 1", total)
	}
	if c.Grammar.WordOrder != "" && c.Grammar.WordOrder != "random" && !grammar.IsKnownWordOrder(c.Grammar.WordOrder) {
		return fmt.Errorf("grammar.word_order %q: want SVO, SOV, VSO or random", c.Grammar.WordOrder)
	}
	return nil
}

// Load loads configuration from file. Keys missing from the file keep
// their default values; a vocabulary distribution in the file replaces the
// default one as a whole.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// yaml.v3 merges into existing maps, so a distribution given in the file
	// would keep the default shares it does not mention
	var override struct {
		Vocabulary struct {
			Distribution map[string]float64 `yaml:"distribution"`
		} `yaml:"vocabulary"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if override.Vocabulary.Distribution != nil {
		cfg.Vocabulary.Distribution = override.Vocabulary.Distribution
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadWithFallback attempts to load configuration from multiple locations
// Priority: explicit path > ~/.conlangrc > /etc/conlang/config.yaml
func LoadWithFallback(explicitPath string) (*Config, error) {
	// If explicit path is provided, use it
	if explicitPath != "" {
		return Load(explicitPath)
	}

	// Try user config (~/.conlangrc)
	homeDir, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(homeDir, ".conlangrc")
		if _, err := os.Stat(userConfigPath); err == nil {
			cfg, err := Load(userConfigPath)
			if err == nil {
				return cfg, nil
			}
		}
	}

	// Try system config (/etc/conlang/config.yaml)
	systemConfigPath := "/etc/conlang/config.yaml"
	if _, err := os.Stat(systemConfigPath); err == nil {
		cfg, err := Load(systemConfigPath)
		if err == nil {
			return cfg, nil
		}
	}

	// No config file found, return defaults
	return DefaultConfig(), nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
