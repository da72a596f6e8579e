package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/styles"
)

var (
	newTags   []string
	newDir    string
	newStdout bool
)

var newCmd = &cobra.Command{
	Use:   "new TITLE",
	Short: "Scaffold a new document",
	Long: `Create a new .org file with a property drawer holding a fresh
ID, a #+title: keyword, and optional #+filetags:.

The file is named after a slug of the title and placed in --dir, the
configured source_dir, or the working directory, in that order. An
existing file is never overwritten.

Examples:
  org new "Meeting Notes"
  org new "Project Plan" --tags work,planning
  org new "Scratch" --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringSliceVar(&newTags, "tags", nil, "Filetags for the new document")
	newCmd.Flags().StringVar(&newDir, "dir", "", "Directory to create the file in")
	newCmd.Flags().BoolVar(&newStdout, "stdout", false, "Print the document instead of writing a file")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	id := uuid.New().String()
	doc := scaffoldDocument(id, title, newTags)
	out := stdoutFromContext(cmd.Context())

	if newStdout {
		fmt.Fprint(out, doc)
		return nil
	}

	dir := strings.TrimSpace(newDir)
	if dir == "" && currentConfig != nil {
		dir = strings.TrimSpace(currentConfig.SourceDir)
	}
	if dir == "" {
		dir = "."
	}

	slug := slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	path := filepath.Join(dir, slug+".org")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"success": true,
			"path":    path,
			"id":      id,
			"title":   title,
		})
	}
	created := fmt.Sprintf("Created %s", path)
	if isTerminal(out) {
		created = styles.SuccessStyle.Render(created)
	}
	fmt.Fprintln(out, created)
	return nil
}

// scaffoldDocument builds the initial text of a new document.
func scaffoldDocument(id, title string, tags []string) string {
	var b strings.Builder
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(":ID: " + id + "\n")
	b.WriteString(":END:\n")
	b.WriteString("#+title: " + title + "\n")

	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) > 0 {
		b.WriteString("#+filetags: :" + strings.Join(cleaned, ":") + ":\n")
	}
	return b.String()
}

// slugify lowercases a title and reduces it to hyphen-separated
// alphanumeric runs, suitable for a file name.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
