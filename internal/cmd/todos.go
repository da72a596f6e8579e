package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/org"
)

var todoState string

var todosCmd = &cobra.Command{
	Use:   "todos [source...]",
	Short: "List sections carrying a state keyword",
	Long: `List every section whose headline carries a TODO or DONE
state keyword.

With --state, only sections in that state are listed. Multiple sources
are parsed independently; a failure names the source and stops.

Examples:
  org todos notes.org
  org todos notes.org --state TODO
  org todos *.org --format table`,
	Args: cobra.ArbitraryArgs,
	RunE: runTodos,
}

func init() {
	todosCmd.Flags().StringVar(&todoState, "state", "", "Only show sections in this state (TODO|DONE)")
	rootCmd.AddCommand(todosCmd)
}

func runTodos(cmd *cobra.Command, args []string) error {
	sources, err := sourcesOrStdin(args)
	if err != nil {
		return err
	}

	state := strings.ToUpper(strings.TrimSpace(todoState))
	matched := make([]taggedSection, 0)
	multi := len(sources) > 1

	for _, src := range sources {
		nodes, err := loadDocument(cmd, src)
		if err != nil {
			return err
		}
		for _, s := range org.Sections(nodes) {
			if s.Keyword == "" {
				continue
			}
			if state != "" && s.Keyword != state {
				continue
			}
			entry := taggedSection{
				Level:   s.Level,
				Keyword: s.Keyword,
				Title:   s.Title,
				Tags:    s.Tags,
			}
			if multi {
				entry.Source = src
			}
			matched = append(matched, entry)
		}
	}

	if structuredOutputRequested() {
		return printStructured(matched)
	}

	out := stdoutFromContext(cmd.Context())
	if len(matched) == 0 {
		fmt.Fprintln(out, "No entries found.")
		return nil
	}

	styled := isTerminal(out)
	for _, m := range matched {
		entry := outlineEntry{Level: m.Level, Keyword: m.Keyword, Title: m.Title, Tags: m.Tags}
		line := formatOutlineEntry(entry, styled)
		if m.Source != "" {
			line = m.Source + ": " + line
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
