package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/org-cli/internal/output"
	"github.com/salmonumbrella/org-cli/internal/secrets"
)

// defaultProfile is the profile name used for credentials
const defaultProfile = "default"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage the bearer token used when fetching remote sources.

Credentials are stored securely in your system keychain (macOS Keychain,
Windows Credential Manager, or encrypted file on Linux).

Examples:
  org auth login --token YOUR_TOKEN
  org auth login  # Interactive prompt for the token
  org auth status
  org auth logout`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	Long: `Store the bearer token sent with remote source requests.

The token comes from --token, the ORG_TOKEN environment variable, or an
interactive prompt, in that order. It is stored in the system keychain.

Examples:
  org auth login                # Prompt for the token
  org auth login --token TOKEN  # Non-interactive`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored token",
	Long: `Clear the stored bearer token from the system keychain.

Examples:
  org auth logout`,
	RunE: runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	Long: `Display whether a bearer token is stored and when it was saved.

Examples:
  org auth status`,
	RunE: runStatus,
}

var loginToken string

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(authCmd)

	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token to store")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := openSecretsStore()
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	token := loginToken
	if token == "" {
		token = envGet("ORG_TOKEN")
	}
	if token == "" {
		if output.YesFromContext(cmd.Context()) {
			// --no-input forbids prompting, so fail instead of blocking.
			return fmt.Errorf("token is required (pass --token or set ORG_TOKEN)")
		}
		var promptErr error
		token, promptErr = promptSecret(cmd.Context(), "Enter token: ")
		if promptErr != nil {
			return fmt.Errorf("failed to read token: %w", promptErr)
		}
	}
	if token == "" {
		return fmt.Errorf("token is required")
	}

	tok := secrets.Token{
		Profile:   defaultProfile,
		APIToken:  token,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.SetToken(defaultProfile, tok); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	if err := store.SetDefaultAccount(defaultProfile); err != nil {
		return fmt.Errorf("failed to set default account: %w", err)
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"status":  "authenticated",
			"profile": defaultProfile,
		})
	}

	out := stdoutFromContext(cmd.Context())
	fmt.Fprintln(out, "Token stored successfully.")
	fmt.Fprintln(out, "Remote sources will now be fetched with this token.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := openSecretsStore()
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	if err := store.DeleteToken(defaultProfile); err != nil {
		// Ignore "not found" errors
		if !strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("failed to remove credentials: %w", err)
		}
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"status": "logged_out",
		})
	}

	out := stdoutFromContext(cmd.Context())
	fmt.Fprintln(out, "Logged out successfully.")
	fmt.Fprintln(out, "The token has been removed from the system keychain.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openSecretsStore()
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	out := stdoutFromContext(cmd.Context())

	tok, err := store.GetToken(defaultProfile)
	if err != nil {
		if structuredOutputRequested() {
			return printStructured(map[string]interface{}{
				"authenticated": false,
			})
		}
		fmt.Fprintln(out, "Status: Not authenticated")
		fmt.Fprintln(out, "\nRun 'org auth login' to store a token.")
		return nil
	}

	if structuredOutputRequested() {
		result := map[string]interface{}{
			"authenticated": true,
			"profile":       tok.Profile,
		}
		if !tok.CreatedAt.IsZero() {
			result["authenticated_at"] = tok.CreatedAt.Format(time.RFC3339)
		}
		if tok.APIToken != "" {
			result["token_preview"] = maskToken(tok.APIToken)
		}
		return printStructured(result)
	}

	fmt.Fprintln(out, "Status: Authenticated")
	fmt.Fprintf(out, "Profile: %s\n", tok.Profile)
	if !tok.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Authenticated at: %s\n", tok.CreatedAt.Format(time.RFC3339))
	}
	if tok.APIToken != "" {
		fmt.Fprintf(out, "Token: %s\n", maskToken(tok.APIToken))
	}
	return nil
}

// promptSecret prompts for a secret input (no echo)
func promptSecret(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(stderrFromContext(ctx), prompt)

	in := stdinFromContext(ctx)
	if file, ok := in.(*os.File); ok {
		if term.IsTerminal(int(file.Fd())) {
			password, err := term.ReadPassword(int(file.Fd()))
			fmt.Fprintln(stderrFromContext(ctx))
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(password)), nil
		}
	}

	// Fall back to regular input for non-terminal (e.g., piped input)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// maskToken masks a token for display, showing only first and last 4 characters
func maskToken(token string) string {
	if len(token) <= 12 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
