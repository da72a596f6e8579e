package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Convert a Markdown document to Org",
	Long: `Convert Markdown to Org markup and print the result.

YAML front matter becomes keyword lines (#+title:, #+filetags:, one
#+key: per remaining scalar), an id field becomes a property drawer,
# headings become * headlines, fenced code becomes #+BEGIN_SRC blocks,
checkbox items become TODO/DONE entries, and blockquotes become
#+BEGIN_QUOTE blocks. Everything else passes through unchanged.

Examples:
  org convert README.md
  cat notes.md | org convert
  org convert notes.md > notes.org`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, err := sourceOrStdin(args)
	if err != nil {
		return err
	}

	resolved, content, err := readSource(cmd, src)
	if err != nil {
		return err
	}

	converted, err := markdownToOrg(content)
	if err != nil {
		return fmt.Errorf("convert %s: %w", resolved, err)
	}

	fmt.Fprint(stdoutFromContext(cmd.Context()), converted)
	return nil
}

// convertMatter is the front matter shape convert understands. Fields
// beyond the well-known three are collected and emitted as #+key: lines.
type convertMatter struct {
	ID    string         `yaml:"id"`
	Title string         `yaml:"title"`
	Tags  []string       `yaml:"tags"`
	Rest  map[string]any `yaml:",inline"`
}

// markdownToOrg rewrites Markdown text as Org markup.
func markdownToOrg(content string) (string, error) {
	var matter convertMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &matter)
	if err != nil {
		return "", fmt.Errorf("parse front matter: %w", err)
	}

	var b strings.Builder
	writeMatter(&b, matter)
	if text := strings.TrimSuffix(string(body), "\n"); text != "" {
		writeBody(&b, strings.Split(text, "\n"))
	}
	return b.String(), nil
}

func writeMatter(b *strings.Builder, m convertMatter) {
	if m.ID != "" {
		b.WriteString(":PROPERTIES:\n")
		b.WriteString(":ID: " + m.ID + "\n")
		b.WriteString(":END:\n")
	}
	if m.Title != "" {
		b.WriteString("#+title: " + m.Title + "\n")
	}
	if len(m.Tags) > 0 {
		b.WriteString("#+filetags: :" + strings.Join(m.Tags, ":") + ":\n")
	}

	keys := make([]string, 0, len(m.Rest))
	for k := range m.Rest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := m.Rest[k].(type) {
		case map[string]any, []any:
			// nested structures have no keyword-line form
		default:
			b.WriteString("#+" + k + ": " + fmt.Sprint(v) + "\n")
		}
	}
}

func writeBody(b *strings.Builder, lines []string) {
	inCode := false
	inQuote := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if !inCode {
				inCode = true
				lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
				if lang != "" {
					b.WriteString("#+BEGIN_SRC " + lang + "\n")
				} else {
					b.WriteString("#+BEGIN_SRC\n")
				}
			} else {
				inCode = false
				b.WriteString("#+END_SRC\n")
			}
			continue
		}
		if inCode {
			b.WriteString(line + "\n")
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			if !inQuote {
				inQuote = true
				b.WriteString("#+BEGIN_QUOTE\n")
			}
			b.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, ">")) + "\n")
			if i+1 >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i+1]), ">") {
				b.WriteString("#+END_QUOTE\n")
				inQuote = false
			}
			continue
		}

		if hashes := countLeading(trimmed, '#'); hashes > 0 && (len(trimmed) == hashes || trimmed[hashes] == ' ') {
			rest := strings.TrimSpace(trimmed[hashes:])
			stars := strings.Repeat("*", hashes)
			if task, keyword := splitTask(rest); keyword != "" {
				b.WriteString(stars + " " + keyword + " " + task + "\n")
			} else {
				b.WriteString(stars + " " + rest + "\n")
			}
			continue
		}

		if task, keyword := splitTask(trimmed); keyword != "" {
			b.WriteString("* " + keyword + " " + task + "\n")
			continue
		}

		b.WriteString(line + "\n")
	}

	// an unterminated fence still closes its block
	if inCode {
		b.WriteString("#+END_SRC\n")
	}
}

// splitTask recognizes a checkbox item and returns its text and the
// matching keyword, or "" when the line is not a checkbox.
func splitTask(s string) (string, string) {
	switch {
	case strings.HasPrefix(s, "- [ ] "):
		return strings.TrimSpace(s[6:]), "TODO"
	case strings.HasPrefix(s, "- [x] "), strings.HasPrefix(s, "- [X] "):
		return strings.TrimSpace(s[6:]), "DONE"
	}
	return "", ""
}

func countLeading(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}
