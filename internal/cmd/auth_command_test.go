package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/salmonumbrella/org-cli/internal/output"
	"github.com/salmonumbrella/org-cli/internal/secrets"
)

type fakeStore struct {
	setTokens    map[string]secrets.Token
	deletedKeys  []string
	defaultAcct  string
	deleteErr    error
	getTokenFunc func(string) (secrets.Token, error)
}

func (f *fakeStore) Keys() ([]string, error) { return nil, nil }

func (f *fakeStore) SetToken(profile string, tok secrets.Token) error {
	if f.setTokens == nil {
		f.setTokens = make(map[string]secrets.Token)
	}
	f.setTokens[profile] = tok
	return nil
}

func (f *fakeStore) GetToken(profile string) (secrets.Token, error) {
	if f.getTokenFunc != nil {
		return f.getTokenFunc(profile)
	}
	if tok, ok := f.setTokens[profile]; ok {
		return tok, nil
	}
	return secrets.Token{}, errors.New("token not found")
}

func (f *fakeStore) DeleteToken(profile string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, profile)
	return nil
}

func (f *fakeStore) ListTokens() ([]secrets.Token, error) { return nil, nil }
func (f *fakeStore) GetDefaultAccount() (string, error)   { return f.defaultAcct, nil }
func (f *fakeStore) SetDefaultAccount(profile string) error {
	f.defaultAcct = profile
	return nil
}

func TestAuthLoginWithFlag(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	prevEnv := envGet
	envGet = func(string) string { return "" }
	defer func() { envGet = prevEnv }()

	loginToken = "flag-token-value"
	defer func() { loginToken = "" }()

	out, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(loginCmd)

	if err := runLogin(loginCmd, nil); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}

	tok, ok := store.setTokens[defaultProfile]
	if !ok {
		t.Fatal("expected token stored under default profile")
	}
	if tok.APIToken != "flag-token-value" {
		t.Errorf("stored token = %q", tok.APIToken)
	}
	if tok.CreatedAt.IsZero() {
		t.Error("expected CreatedAt set")
	}
	if store.defaultAcct != defaultProfile {
		t.Errorf("default account = %q", store.defaultAcct)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out.String())
	}
	if result["status"] != "authenticated" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestAuthLoginFromEnv(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	prevEnv := envGet
	envGet = func(key string) string {
		if key == "ORG_TOKEN" {
			return "env-token-value"
		}
		return ""
	}
	defer func() { envGet = prevEnv }()

	loginToken = ""

	_, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(loginCmd)

	if err := runLogin(loginCmd, nil); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}
	if store.setTokens[defaultProfile].APIToken != "env-token-value" {
		t.Errorf("stored token = %q", store.setTokens[defaultProfile].APIToken)
	}
}

func TestAuthLoginPromptsPipedInput(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	prevEnv := envGet
	envGet = func(string) string { return "" }
	defer func() { envGet = prevEnv }()

	loginToken = ""

	// Piped stdin falls back to the line reader.
	_, restoreCtx := withStdinContext(t, output.FormatJSON, strings.NewReader("piped-token\n"))
	defer restoreCtx()
	setCmdContext(loginCmd)

	if err := runLogin(loginCmd, nil); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}
	if store.setTokens[defaultProfile].APIToken != "piped-token" {
		t.Errorf("stored token = %q", store.setTokens[defaultProfile].APIToken)
	}
}

func TestAuthLoginNoInputFailsFast(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	prevEnv := envGet
	envGet = func(string) string { return "" }
	defer func() { envGet = prevEnv }()

	loginToken = ""

	// --no-input with no token available must error, not block on a prompt.
	_, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(loginCmd)

	err := runLogin(loginCmd, nil)
	if err == nil {
		t.Fatal("expected error when no token is available under --no-input")
	}
	if !strings.Contains(err.Error(), "token is required") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(store.setTokens) != 0 {
		t.Errorf("no token should be stored, got %v", store.setTokens)
	}
}

func TestAuthLogout(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	out, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(logoutCmd)

	if err := runLogout(logoutCmd, nil); err != nil {
		t.Fatalf("runLogout failed: %v", err)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != defaultProfile {
		t.Errorf("deleted keys = %v", store.deletedKeys)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if result["status"] != "logged_out" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestAuthLogoutIgnoresNotFound(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("token not found")}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	_, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(logoutCmd)

	if err := runLogout(logoutCmd, nil); err != nil {
		t.Fatalf("logout should ignore missing token: %v", err)
	}
}

func TestAuthStatusAuthenticated(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		setTokens: map[string]secrets.Token{
			defaultProfile: {
				Profile:   defaultProfile,
				APIToken:  "abcdefghijklmnop",
				CreatedAt: created,
			},
		},
	}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	out, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(statusCmd)

	if err := runStatus(statusCmd, nil); err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out.String())
	}
	if result["authenticated"] != true {
		t.Errorf("unexpected result: %v", result)
	}
	if result["authenticated_at"] != created.Format(time.RFC3339) {
		t.Errorf("authenticated_at = %v", result["authenticated_at"])
	}
	preview, _ := result["token_preview"].(string)
	if preview != "abcd...mnop" {
		t.Errorf("token_preview = %q", preview)
	}
	if strings.Contains(out.String(), "abcdefghijklmnop") {
		t.Error("full token must never appear in output")
	}
}

func TestAuthStatusNotAuthenticated(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	out, _, restoreCtx := withTestContext(t, output.FormatJSON, true)
	defer restoreCtx()
	setCmdContext(statusCmd)

	if err := runStatus(statusCmd, nil); err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if result["authenticated"] != false {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestAuthStatusText(t *testing.T) {
	store := &fakeStore{}
	restoreStore := withTestStore(t, store)
	defer restoreStore()

	out, _, restoreCtx := withTestContext(t, output.FormatText, true)
	defer restoreCtx()
	setCmdContext(statusCmd)

	if err := runStatus(statusCmd, nil); err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
	if !strings.Contains(out.String(), "Not authenticated") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("short"); got != "****" {
		t.Errorf("got %q", got)
	}
	// 12 characters is still fully masked.
	if got := maskToken("123456789012"); got != "****" {
		t.Errorf("got %q", got)
	}
	if got := maskToken("abcdefghijklmnopqrst"); got != "abcd...qrst" {
		t.Errorf("got %q", got)
	}
}
