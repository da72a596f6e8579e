package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/output"
	"github.com/salmonumbrella/org-cli/internal/source"
	"github.com/salmonumbrella/org-cli/internal/styles"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid --error-format %q (expected auto|text|json|yaml)", format)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	w := stderrFromContext(ctx)
	msg := err.Error()
	if isTerminal(w) {
		msg = styles.ErrorStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(w, msg)
}

func buildErrorEnvelope(err error) map[string]interface{} {
	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"message": err.Error(),
		},
	}

	errMap := payload["error"].(map[string]interface{})
	errMap["category"] = "system"
	errMap["type"] = "error"

	var structErr org.StructuralError
	if errors.As(err, &structErr) {
		errMap["type"] = "structural"
		errMap["category"] = "user"
		errMap["line"] = structErr.Line
	}

	var authErr source.AuthenticationError
	if errors.As(err, &authErr) {
		errMap["type"] = "auth"
		errMap["category"] = "user"
	}

	var notFoundErr source.NotFoundError
	if errors.As(err, &notFoundErr) {
		errMap["type"] = "not_found"
		errMap["category"] = "user"
	}

	if errors.Is(err, fs.ErrNotExist) {
		errMap["type"] = "not_found"
		errMap["category"] = "user"
	}

	var httpErr source.HTTPError
	if errors.As(err, &httpErr) {
		errMap["type"] = "http"
		errMap["category"] = "system"
		errMap["status"] = httpErr.StatusCode
	}

	return payload
}
