package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/output"
	"github.com/salmonumbrella/org-cli/internal/styles"
)

var outlineLevel int

var outlineCmd = &cobra.Command{
	Use:   "outline [source]",
	Short: "List the section outline of a document",
	Long: `List every section of a document in order: level, state
keyword, title, and tags.

The sequence is flat; levels describe the stars on each headline, not
a containment tree.

Examples:
  org outline notes.org
  org outline notes.org --level 2
  org outline notes.org --format table
  curl -s https://example.com/notes.org | org outline`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().IntVar(&outlineLevel, "level", 0, "Only show sections up to this level (0 = all)")
	rootCmd.AddCommand(outlineCmd)
}

// outlineEntry is one row of the outline listing.
type outlineEntry struct {
	Level   int      `json:"level"`
	Keyword string   `json:"keyword,omitempty"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags,omitempty"`
}

func runOutline(cmd *cobra.Command, args []string) error {
	src, err := sourceOrStdin(args)
	if err != nil {
		return err
	}

	nodes, err := loadDocument(cmd, src)
	if err != nil {
		return err
	}

	entries := make([]outlineEntry, 0)
	for _, s := range org.Sections(nodes) {
		if outlineLevel > 0 && s.Level > outlineLevel {
			continue
		}
		entries = append(entries, outlineEntry{
			Level:   s.Level,
			Keyword: s.Keyword,
			Title:   s.Title,
			Tags:    s.Tags,
		})
	}

	if structuredOutputRequested() {
		return printStructured(entries)
	}

	out := stdoutFromContext(cmd.Context())

	if GetOutputFormat() == output.FormatTable {
		printer := output.NewPrinter(out, output.FormatTable)
		table := output.NewTable("LEVEL", "KEYWORD", "TITLE", "TAGS")
		for _, e := range entries {
			table.AddRow(
				fmt.Sprintf("%d", e.Level),
				e.Keyword,
				truncateString(e.Title, 60),
				strings.Join(e.Tags, ","),
			)
		}
		return printer.Print(cmd.Context(), table)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No sections found.")
		return nil
	}

	styled := isTerminal(out)
	for _, e := range entries {
		fmt.Fprintln(out, formatOutlineEntry(e, styled))
	}
	return nil
}

// formatOutlineEntry renders one headline for terminal display. Styles
// only apply on a real terminal so piped output stays plain.
func formatOutlineEntry(e outlineEntry, styled bool) string {
	stars := strings.Repeat("*", e.Level)
	tags := ""
	if len(e.Tags) > 0 {
		tags = ":" + strings.Join(e.Tags, ":") + ":"
	}

	parts := make([]string, 0, 4)
	if styled {
		parts = append(parts, styles.StarsStyle.Render(stars))
		if e.Keyword != "" {
			kw := styles.TodoStyle
			if e.Keyword == "DONE" {
				kw = styles.DoneStyle
			}
			parts = append(parts, kw.Render(e.Keyword))
		}
		if e.Title != "" {
			parts = append(parts, styles.TitleStyle.Render(e.Title))
		}
		if tags != "" {
			parts = append(parts, styles.TagStyle.Render(tags))
		}
		return strings.Join(parts, " ")
	}

	parts = append(parts, stars)
	if e.Keyword != "" {
		parts = append(parts, e.Keyword)
	}
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	if tags != "" {
		parts = append(parts, tags)
	}
	return strings.Join(parts, " ")
}

// Helper functions
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
