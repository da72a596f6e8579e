package config

import (
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid fields", Config{KeyringBackend: "file", OutputFormat: "json", BaseURL: "https://example.com"}, false},
		{"case insensitive", Config{KeyringBackend: "Auto", OutputFormat: "NDJSON"}, false},
		{"bad backend", Config{KeyringBackend: "vault"}, true},
		{"bad format", Config{OutputFormat: "xml"}, true},
		{"schemeless base_url", Config{BaseURL: "example.com/api"}, true},
		{"http base_url", Config{BaseURL: "http://localhost:8080"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &Config{
		BaseURL:      "https://example.com",
		SourceDir:    "/srv/notes",
		OutputFormat: "json",
	}
	if err := in.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}
