//go:build !darwin

package secrets

// Keychain helpers only apply on macOS; elsewhere they are no-ops.

// IsKeychainLockedError always reports false on non-darwin platforms
func IsKeychainLockedError(string) bool { return false }

// CheckKeychainLocked always reports false on non-darwin platforms
func CheckKeychainLocked() bool { return false }

// UnlockKeychain is a no-op on non-darwin platforms
func UnlockKeychain() error { return nil }

// EnsureKeychainAccess is a no-op on non-darwin platforms
func EnsureKeychainAccess() error { return nil }
