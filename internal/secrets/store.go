package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/99designs/keyring"

	"github.com/salmonumbrella/org-cli/internal/config"
)

// Token holds a stored API credential
type Token struct {
	Profile   string    `json:"profile"`
	APIToken  string    `json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
}

// Store provides access to stored credentials
type Store interface {
	Keys() ([]string, error)
	SetToken(profile string, tok Token) error
	GetToken(profile string) (Token, error)
	DeleteToken(profile string) error
	ListTokens() ([]Token, error)
	GetDefaultAccount() (string, error)
	SetDefaultAccount(profile string) error
}

// defaultAccountKey is the keyring key holding the default profile name
const defaultAccountKey = "default-account"

// keyringOpenTimeout bounds how long we wait for the D-Bus secret service
// before giving up with a recovery hint
const keyringOpenTimeout = 5 * time.Second

// keyringOpenFunc is replaceable in tests
var keyringOpenFunc = keyring.Open

var errKeyringTimeout = errors.New("keyring open timed out")

// KeyringBackendInfo describes the resolved keyring backend selection
type KeyringBackendInfo struct {
	Value string // auto, keychain, file
}

// resolveBackend determines the keyring backend from environment and config
func resolveBackend(cfg *config.Config) KeyringBackendInfo {
	if v := os.Getenv("ORG_KEYRING_BACKEND"); v != "" {
		return KeyringBackendInfo{Value: v}
	}
	if cfg != nil && cfg.KeyringBackend != "" {
		return KeyringBackendInfo{Value: cfg.KeyringBackend}
	}
	return KeyringBackendInfo{Value: "auto"}
}

// shouldForceFileBackend reports whether to bypass the OS keyring entirely.
// On headless Linux there is no D-Bus session, so auto-selection would hang
// or fail; fall back to the encrypted file backend.
func shouldForceFileBackend(goos string, info KeyringBackendInfo, dbusAddr string) bool {
	if goos != "linux" {
		return false
	}
	if info.Value != "auto" && info.Value != "" {
		return false
	}
	return dbusAddr == ""
}

// shouldUseKeyringTimeout reports whether keyring opening needs a timeout
// guard. A present but unresponsive D-Bus session can block forever.
func shouldUseKeyringTimeout(goos string, info KeyringBackendInfo, dbusAddr string) bool {
	if goos != "linux" {
		return false
	}
	if info.Value != "auto" && info.Value != "" {
		return false
	}
	return dbusAddr != ""
}

// openKeyringWithTimeout opens the keyring, failing with a recovery hint if
// the open blocks for longer than timeout
func openKeyringWithTimeout(cfg keyring.Config, timeout time.Duration) (keyring.Keyring, error) {
	type result struct {
		ring keyring.Keyring
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		ring, err := keyringOpenFunc(cfg)
		ch <- result{ring: ring, err: err}
	}()

	select {
	case res := <-ch:
		return res.ring, res.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w after %s: the secret service is not responding.\n\nSet ORG_KEYRING_BACKEND=file to use the encrypted file backend instead", errKeyringTimeout, timeout)
	}
}

// wrapKeychainError adds recovery instructions to locked-keychain errors.
// The error string check is deliberately not platform-gated so the wrapping
// behaves identically everywhere.
func wrapKeychainError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "errSecInteractionNotAllowed") {
		return fmt.Errorf("keychain is locked: %w\n\nRun 'security unlock-keychain' to unlock your login keychain, then retry", err)
	}
	return err
}

// OpenDefault opens the credential store using the configured backend
func OpenDefault() (Store, error) {
	cfg, err := config.ReadConfig()
	if err != nil {
		cfg = &config.Config{}
	}

	info := resolveBackend(cfg)
	dbusAddr := os.Getenv("DBUS_SESSION_BUS_ADDRESS")

	backend := info.Value
	if shouldForceFileBackend(runtime.GOOS, info, dbusAddr) {
		backend = "file"
	}

	fileDir, err := config.EnsureKeyringDir()
	if err != nil {
		return nil, err
	}

	kcfg := keyring.Config{
		ServiceName: config.AppName,
		FileDir:     fileDir,
		FilePasswordFunc: func(prompt string) (string, error) {
			if pw := os.Getenv("ORG_KEYRING_PASSWORD"); pw != "" {
				return pw, nil
			}
			return keyring.TerminalPrompt(prompt)
		},
	}

	switch backend {
	case "file":
		kcfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	case "keychain":
		kcfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend}
		if err := EnsureKeychainAccess(); err != nil {
			return nil, err
		}
	}

	var ring keyring.Keyring
	if shouldUseKeyringTimeout(runtime.GOOS, info, dbusAddr) {
		ring, err = openKeyringWithTimeout(kcfg, keyringOpenTimeout)
	} else {
		ring, err = keyringOpenFunc(kcfg)
	}
	if err != nil {
		return nil, wrapKeychainError(err)
	}

	return &keyringStore{ring: ring}, nil
}

// keyringStore implements Store on top of a keyring backend
type keyringStore struct {
	ring keyring.Keyring
}

func (s *keyringStore) Keys() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, wrapKeychainError(err)
	}
	return keys, nil
}

func (s *keyringStore) SetToken(profile string, tok Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	item := keyring.Item{
		Key:   profile,
		Data:  data,
		Label: config.AppName + ": " + profile,
	}
	if err := s.ring.Set(item); err != nil {
		return wrapKeychainError(err)
	}
	return nil
}

func (s *keyringStore) GetToken(profile string) (Token, error) {
	item, err := s.ring.Get(profile)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Token{}, fmt.Errorf("token not found for profile %q", profile)
		}
		return Token{}, wrapKeychainError(err)
	}
	var tok Token
	if err := json.Unmarshal(item.Data, &tok); err != nil {
		return Token{}, fmt.Errorf("decoding token: %w", err)
	}
	return tok, nil
}

func (s *keyringStore) DeleteToken(profile string) error {
	if err := s.ring.Remove(profile); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("token not found for profile %q", profile)
		}
		return wrapKeychainError(err)
	}
	return nil
}

func (s *keyringStore) ListTokens() ([]Token, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for _, key := range keys {
		if key == defaultAccountKey {
			continue
		}
		tok, err := s.GetToken(key)
		if err != nil {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (s *keyringStore) GetDefaultAccount() (string, error) {
	item, err := s.ring.Get(defaultAccountKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", wrapKeychainError(err)
	}
	return string(item.Data), nil
}

func (s *keyringStore) SetDefaultAccount(profile string) error {
	item := keyring.Item{
		Key:  defaultAccountKey,
		Data: []byte(profile),
	}
	if err := s.ring.Set(item); err != nil {
		return wrapKeychainError(err)
	}
	return nil
}
