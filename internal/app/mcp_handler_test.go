package app

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/logging"
)

func TestMCPClientConfig(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantArgs   []string
	}{
		{"no config", "", []string{}},
		{"with config", "/etc/conlang/config.yaml", []string{"-config", "/etc/conlang/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMCPHandler(config.DefaultConfig(), tt.configPath, "test", "abc", logging.Discard())
			data, err := h.ClientConfig("/usr/local/bin/conlang-mcp")
			if err != nil {
				t.Fatalf("ClientConfig error: %v", err)
			}

			var got struct {
				MCPServers map[string]struct {
					Command string   `json:"command"`
					Args    []string `json:"args"`
				} `json:"mcpServers"`
			}
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			entry, ok := got.MCPServers["conlang"]
			if !ok {
				t.Fatalf("missing conlang entry in %s", data)
			}
			if entry.Command != "/usr/local/bin/conlang-mcp" {
				t.Errorf("command = %q", entry.Command)
			}
			if diff := cmp.Diff(tt.wantArgs, entry.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
