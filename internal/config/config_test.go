package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Phonology.MaxSyllables != 3 {
		t.Errorf("max_syllables = %d, want 3", cfg.Phonology.MaxSyllables)
	}
	if diff := cmp.Diff([]string{"CV", "CVC", "V", "VC"}, cfg.Phonology.SyllableStructure); diff != "" {
		t.Errorf("syllable_structure mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeFile(t, "conlang.yaml", `
phonology:
  consonants: ptk
  syllable_structure: [CV, CCV]
session:
  ttl: 5m
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Phonology.Consonants != "ptk" {
		t.Errorf("consonants = %q, want ptk", cfg.Phonology.Consonants)
	}
	if cfg.Phonology.Vowels != DefaultConfig().Phonology.Vowels {
		t.Errorf("vowels = %q, want default", cfg.Phonology.Vowels)
	}
	if diff := cmp.Diff([]string{"CV", "CCV"}, cfg.Phonology.SyllableStructure); diff != "" {
		t.Errorf("syllable_structure mismatch (-want +got):\n%s", diff)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", cfg.Session.TTL)
	}
	if cfg.Session.MaxSessions != 1024 {
		t.Errorf("max_sessions = %d, want default 1024", cfg.Session.MaxSessions)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Log.Level)
	}

	ph := cfg.PhonologyConfig()
	if ph.Consonants != "ptk" || ph.MaxSyllables != 3 {
		t.Errorf("PhonologyConfig = %+v", ph)
	}
}

func TestLoadReplacesDistribution(t *testing.T) {
	path := writeFile(t, "dist.yaml", `
vocabulary:
  distribution:
    NOUN: 0.5
    VERB: 0.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := map[string]float64{"NOUN": 0.5, "VERB": 0.5}
	if diff := cmp.Diff(want, cfg.Vocabulary.Distribution); diff != "" {
		t.Errorf("distribution mismatch (-want +got):\n%s", diff)
	}
	if cfg.Vocabulary.InitialSize != DefaultConfig().Vocabulary.InitialSize {
		t.Errorf("initial_size = %d, want default", cfg.Vocabulary.InitialSize)
	}

	// Without a distribution in the file the defaults stay
	path = writeFile(t, "size.yaml", "vocabulary:\n  initial_size: 50\n")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig().Vocabulary.Distribution, cfg.Vocabulary.Distribution); diff != "" {
		t.Errorf("default distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}

	bad := writeFile(t, "bad.yaml", "phonology: [unclosed")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Load of malformed file error = %v, want parse error", err)
	}

	invalid := writeFile(t, "invalid.yaml", "grammar:\n  word_order: OVS\n")
	if _, err := Load(invalid); err == nil {
		t.Error("Load accepted unknown word order")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"grpc port", func(c *Config) { c.Server.GRPCPort = -1 }},
		{"ttl", func(c *Config) { c.Session.TTL = -time.Second }},
		{"max sessions", func(c *Config) { c.Session.MaxSessions = -1 }},
		{"distribution sum", func(c *Config) { c.Vocabulary.Distribution["NOUN"] = 0.9 }},
		{"negative share", func(c *Config) { c.Vocabulary.Distribution["ADV"] = -0.05 }},
		{"word order", func(c *Config) { c.Grammar.WordOrder = "XYZ" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.edit(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate succeeded, want error", tt.name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language.Name = "Valyr"
	cfg.Session.TTL = 90 * time.Second

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithFallbackExplicit(t *testing.T) {
	path := writeFile(t, "explicit.yaml", "language:\n  name: Explicit\n")
	cfg, err := LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}
	if cfg.Language.Name != "Explicit" {
		t.Errorf("name = %s, want Explicit", cfg.Language.Name)
	}
}

func TestLoadWithFallbackDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}
	if cfg.Language.Name == "" {
		t.Error("fallback config has no language name")
	}
}
