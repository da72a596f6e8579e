package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salmonumbrella/org-cli/internal/config"
	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/output"
)

func resetNewFlags(t *testing.T) {
	t.Helper()
	prevTags, prevDir, prevStdout := newTags, newDir, newStdout
	t.Cleanup(func() {
		newTags, newDir, newStdout = prevTags, prevDir, prevStdout
	})
	newTags, newDir, newStdout = nil, "", false
}

func TestNewStdout(t *testing.T) {
	withNilConfig(t)
	resetNewFlags(t)

	out, _, cleanup := withTestContext(t, output.FormatText, false)
	defer cleanup()
	setCmdContext(newCmd)

	newStdout = true
	newTags = []string{"work", " planning "}

	if err := runNew(newCmd, []string{"Meeting Notes"}); err != nil {
		t.Fatalf("runNew failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, ":PROPERTIES:\n:ID: ") {
		t.Errorf("expected property drawer first, got:\n%s", got)
	}
	if !strings.Contains(got, "#+title: Meeting Notes\n") {
		t.Errorf("expected title keyword, got:\n%s", got)
	}
	if !strings.Contains(got, "#+filetags: :work:planning:\n") {
		t.Errorf("expected trimmed filetags, got:\n%s", got)
	}

	// The scaffold parses cleanly.
	if _, err := org.ParseString(got); err != nil {
		t.Errorf("scaffold does not parse: %v", err)
	}
}

func TestNewWritesFile(t *testing.T) {
	withNilConfig(t)
	resetNewFlags(t)
	dir := t.TempDir()

	out, _, cleanup := withTestContext(t, output.FormatJSON, false)
	defer cleanup()
	setCmdContext(newCmd)

	newDir = dir
	if err := runNew(newCmd, []string{"Project Plan"}); err != nil {
		t.Fatalf("runNew failed: %v", err)
	}

	path := filepath.Join(dir, "project-plan.org")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file created: %v", err)
	}
	if !strings.Contains(string(data), "#+title: Project Plan\n") {
		t.Errorf("unexpected file content:\n%s", string(data))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out.String())
	}
	if result["success"] != true || result["path"] != path {
		t.Errorf("unexpected result: %v", result)
	}
	if id, _ := result["id"].(string); id == "" {
		t.Error("expected generated id")
	}
}

func TestNewRefusesOverwrite(t *testing.T) {
	withNilConfig(t)
	resetNewFlags(t)
	dir := t.TempDir()

	_, _, cleanup := withTestContext(t, output.FormatJSON, false)
	defer cleanup()
	setCmdContext(newCmd)

	newDir = dir
	if err := runNew(newCmd, []string{"Duplicate"}); err != nil {
		t.Fatalf("first runNew failed: %v", err)
	}

	err := runNew(newCmd, []string{"Duplicate"})
	if err == nil {
		t.Fatal("expected error for existing file")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewUsesConfiguredSourceDir(t *testing.T) {
	resetNewFlags(t)
	dir := t.TempDir()

	prevCfg := currentConfig
	currentConfig = &config.Config{SourceDir: dir}
	defer func() { currentConfig = prevCfg }()

	_, _, cleanup := withTestContext(t, output.FormatText, false)
	defer cleanup()
	setCmdContext(newCmd)

	if err := runNew(newCmd, []string{"Configured"}); err != nil {
		t.Fatalf("runNew failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "configured.org")); err != nil {
		t.Errorf("expected file in source_dir: %v", err)
	}
}

func TestNewEmptyTitle(t *testing.T) {
	withNilConfig(t)
	resetNewFlags(t)

	_, _, cleanup := withTestContext(t, output.FormatText, false)
	defer cleanup()
	setCmdContext(newCmd)

	if err := runNew(newCmd, []string{"   "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Meeting Notes", "meeting-notes"},
		{"Hello, World!", "hello-world"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPER case 123", "upper-case-123"},
		{"!!!", ""},
		{"trailing-", "trailing"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScaffoldDocument(t *testing.T) {
	doc := scaffoldDocument("id-123", "Title", nil)
	want := ":PROPERTIES:\n:ID: id-123\n:END:\n#+title: Title\n"
	if doc != want {
		t.Errorf("got %q, want %q", doc, want)
	}

	// Blank tags are dropped entirely.
	doc = scaffoldDocument("id-123", "Title", []string{" ", ""})
	if strings.Contains(doc, "#+filetags:") {
		t.Errorf("expected no filetags line, got %q", doc)
	}
}
