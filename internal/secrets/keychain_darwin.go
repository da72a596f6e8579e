//go:build darwin

package secrets

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsKeychainLockedError reports whether an error string indicates the macOS
// keychain refused access because it is locked
func IsKeychainLockedError(errStr string) bool {
	return strings.Contains(errStr, "errSecInteractionNotAllowed")
}

// loginKeychainPath returns the path to the user's login keychain
func loginKeychainPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Keychains", "login.keychain-db")
}

// CheckKeychainLocked reports whether the login keychain is currently locked
func CheckKeychainLocked() bool {
	out, err := exec.Command("security", "show-keychain-info", loginKeychainPath()).CombinedOutput()
	if err != nil {
		return IsKeychainLockedError(string(out))
	}
	return false
}

// UnlockKeychain interactively unlocks the login keychain
func UnlockKeychain() error {
	cmd := exec.Command("security", "unlock-keychain", loginKeychainPath())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("unlocking keychain: %w", err)
	}
	return nil
}

// EnsureKeychainAccess unlocks the login keychain if it is locked
func EnsureKeychainAccess() error {
	if !CheckKeychainLocked() {
		return nil
	}
	return UnlockKeychain()
}
