package source

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/salmonumbrella/org-cli/internal/logger"
)

func newTestFetcher(opts ...Option) *Fetcher {
	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	return NewFetcher(opts...)
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"http://example.com/notes.org", true},
		{"https://example.com/notes.org", true},
		{"notes.org", false},
		{"/tmp/notes.org", false},
		{"-", false},
		{"httpserver.org", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.source); got != tt.expected {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.source, got, tt.expected)
		}
	}
}

func TestOpen_Stdin(t *testing.T) {
	f := newTestFetcher()
	stdin := strings.NewReader("* Heading\n")

	r, err := f.Open(context.Background(), "-", stdin)
	if err != nil {
		t.Fatalf("Open(-) failed: %v", err)
	}
	defer r.Close()

	content, err := f.Read(context.Background(), "-", strings.NewReader("* Heading\n"))
	if err != nil {
		t.Fatalf("Read(-) failed: %v", err)
	}
	if content != "* Heading\n" {
		t.Errorf("Read(-) = %q, want %q", content, "* Heading\n")
	}
}

func TestOpen_EmptySource(t *testing.T) {
	f := newTestFetcher()
	if _, err := f.Open(context.Background(), "  ", nil); err == nil {
		t.Fatal("Open with blank source expected error, got nil")
	}
}

func TestOpen_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.org")
	if err := os.WriteFile(path, []byte("* Top\nbody\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f := newTestFetcher()
	content, err := f.Read(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Read(%s) failed: %v", path, err)
	}
	if content != "* Top\nbody\n" {
		t.Errorf("Read = %q, want file contents", content)
	}
}

func TestOpen_MissingLocalFile(t *testing.T) {
	f := newTestFetcher()
	_, err := f.Open(context.Background(), filepath.Join(t.TempDir(), "absent.org"), nil)
	if err == nil {
		t.Fatal("Open of missing file expected error, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestFetch_Success(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("* Remote\n"))
	}))
	defer server.Close()

	f := newTestFetcher(WithToken("secret"))
	content, err := f.Read(context.Background(), server.URL+"/notes.org", nil)
	if err != nil {
		t.Fatalf("Read(%s) failed: %v", server.URL, err)
	}
	if content != "* Remote\n" {
		t.Errorf("Read = %q, want remote body", content)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
}

func TestFetch_NoTokenNoAuthHeader(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher()
	if _, err := f.Read(context.Background(), server.URL, nil); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if sawAuth {
		t.Error("expected no Authorization header without a token")
	}
}

func TestFetch_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, func(err error) bool {
			var authErr AuthenticationError
			return errors.As(err, &authErr)
		}},
		{"forbidden", http.StatusForbidden, func(err error) bool {
			var authErr AuthenticationError
			return errors.As(err, &authErr)
		}},
		{"not found", http.StatusNotFound, func(err error) bool {
			var nfErr NotFoundError
			return errors.As(err, &nfErr)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var httpErr HTTPError
			return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusInternalServerError
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("nope"))
			}))
			defer server.Close()

			f := newTestFetcher()
			_, err := f.Read(context.Background(), server.URL, nil)
			if err == nil {
				t.Fatalf("expected error for status %d, got nil", tt.status)
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type for status %d: %v", tt.status, err)
			}
		})
	}
}

func TestOpen_BaseURLFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/docs/notes.org" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("* From base\n"))
	}))
	defer server.Close()

	f := newTestFetcher(WithBaseURL(server.URL + "/docs/"))
	content, err := f.Read(context.Background(), "notes.org", nil)
	if err != nil {
		t.Fatalf("Read with base URL fallback failed: %v", err)
	}
	if content != "* From base\n" {
		t.Errorf("Read = %q, want base URL body", content)
	}
}

func TestOpen_BaseURLIgnoredForExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.org")
	if err := os.WriteFile(path, []byte("* Local\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("base URL should not be contacted when the file exists")
	}))
	defer server.Close()

	f := newTestFetcher(WithBaseURL(server.URL))
	content, err := f.Read(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if content != "* Local\n" {
		t.Errorf("Read = %q, want local contents", content)
	}
}

func TestOpen_BaseURLIgnoredForAbsolutePath(t *testing.T) {
	f := newTestFetcher(WithBaseURL("https://example.com"))
	_, err := f.Open(context.Background(), filepath.Join(t.TempDir(), "absent.org"), nil)
	if err == nil {
		t.Fatal("expected error for missing absolute path, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist for absolute path, got %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	f := NewFetcher(WithTimeout(5 * time.Second))
	if f.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", f.httpClient.Timeout)
	}
}

func TestHasData_PipedReader(t *testing.T) {
	if !HasData(strings.NewReader("piped")) {
		t.Error("HasData(strings.Reader) = false, want true")
	}
}
