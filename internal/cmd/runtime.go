package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/config"
	"github.com/salmonumbrella/org-cli/internal/logger"
	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/source"
)

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// resolveToken resolves the bearer token for remote sources with
// precedence: flags > env > keyring > config.
func resolveToken(cmd *cobra.Command, cfg *config.Config) string {
	if flagChanged(cmd, "token") {
		if v := strings.TrimSpace(apiToken); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(envGet("ORG_TOKEN")); v != "" {
		return v
	}
	if store, err := openSecretsStore(); err == nil {
		if tok, err := store.GetToken(defaultProfile); err == nil && tok.APIToken != "" {
			return tok.APIToken
		}
	}
	if cfg != nil {
		return strings.TrimSpace(cfg.Token)
	}
	return ""
}

// resolveBaseURL resolves the remote base URL: flag > config.
func resolveBaseURL(cmd *cobra.Command, cfg *config.Config) string {
	if flagChanged(cmd, "base-url") {
		return strings.TrimSpace(baseURLFlag)
	}
	if cfg != nil {
		return strings.TrimSpace(cfg.BaseURL)
	}
	return ""
}

// resolveLocalSource maps a bare relative name that is missing from
// the working directory into the configured source directory.
func resolveLocalSource(cfg *config.Config, src string) string {
	if src == "-" || source.IsRemote(src) || filepath.IsAbs(src) {
		return src
	}
	if _, err := os.Stat(src); err == nil {
		return src
	}
	if cfg != nil {
		if dir := strings.TrimSpace(cfg.SourceDir); dir != "" {
			candidate := filepath.Join(dir, src)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return src
}

// newFetcher builds the source fetcher for cmd. The keyring is only
// consulted when the invocation can actually reach a remote source,
// so purely local commands never touch it.
func newFetcher(cmd *cobra.Command, cfg *config.Config, remotePossible bool) *source.Fetcher {
	opts := []source.Option{source.WithDebug(debug)}
	base := resolveBaseURL(cmd, cfg)
	if base != "" {
		opts = append(opts, source.WithBaseURL(base))
	}
	if remotePossible || base != "" {
		if token := resolveToken(cmd, cfg); token != "" {
			opts = append(opts, source.WithToken(token))
		}
	}
	return source.NewFetcher(opts...)
}

// loadDocument acquires one source argument and parses it.
func loadDocument(cmd *cobra.Command, src string) ([]*org.Node, error) {
	_, nodes, err := loadDocumentContent(cmd, src)
	return nodes, err
}

// loadDocumentContent is loadDocument plus the raw text, for commands
// that compare the parsed form against what was actually read.
func loadDocumentContent(cmd *cobra.Command, src string) (string, []*org.Node, error) {
	resolved, content, err := readSource(cmd, src)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	lines := org.SplitLines(content)
	nodes, err := org.Parse(lines)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", resolved, err)
	}
	logger.Default.ParseCompleted(resolved, len(lines), len(nodes), time.Since(start))
	return content, nodes, nil
}

// readSource resolves one source argument and reads it without parsing.
func readSource(cmd *cobra.Command, src string) (string, string, error) {
	cfg := currentConfig
	resolved := resolveLocalSource(cfg, src)
	fetcher := newFetcher(cmd, cfg, source.IsRemote(resolved))

	content, err := fetcher.Read(cmd.Context(), resolved, stdinFromContext(cmd.Context()))
	if err != nil {
		logger.Default.SourceError(resolved, err)
		return "", "", err
	}
	return resolved, content, nil
}

// sourceOrStdin defaults an optional source argument to stdin when
// data is piped.
func sourceOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if source.HasData(stdinFromContext(currentContext())) {
		return "-", nil
	}
	return "", fmt.Errorf("no source given and stdin is a terminal (pass a file, URL, or -)")
}

// sourcesOrStdin is the multi-source variant of sourceOrStdin.
func sourcesOrStdin(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	src, err := sourceOrStdin(args)
	if err != nil {
		return nil, err
	}
	return []string{src}, nil
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
