package cmd

import (
	"testing"

	"github.com/salmonumbrella/org-cli/internal/config"
)

func TestConfigApplyAndClear(t *testing.T) {
	cfg := &config.Config{}

	if err := applyConfigValue(cfg, "source_dir", "/srv/notes"); err != nil {
		t.Fatalf("apply source_dir: %v", err)
	}
	if cfg.SourceDir != "/srv/notes" {
		t.Fatalf("expected source_dir set, got %q", cfg.SourceDir)
	}

	if err := clearConfigValue(cfg, "source_dir"); err != nil {
		t.Fatalf("clear source_dir: %v", err)
	}
	if cfg.SourceDir != "" {
		t.Fatalf("expected source_dir cleared, got %q", cfg.SourceDir)
	}

	if err := applyConfigValue(cfg, "unknown", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestSupportedConfigKeys(t *testing.T) {
	keys := supportedConfigKeys()
	if len(keys) == 0 {
		t.Fatalf("expected supported keys")
	}

	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}

	for _, k := range []string{"base_url", "source_dir", "token", "keyring_backend", "output_format"} {
		if !seen[k] {
			t.Fatalf("missing key %s", k)
		}
	}
}

func TestConfigOutputMasksToken(t *testing.T) {
	cfg := &config.Config{
		Token: "abcdefghijklmnop",
	}

	output := configOutput(cfg)
	token, ok := output["token"].(string)
	if !ok {
		t.Fatalf("expected token string in output")
	}
	if token == cfg.Token {
		t.Fatalf("expected masked token, got raw")
	}
	if output["token_set"] != true {
		t.Fatalf("expected token_set true")
	}
}
