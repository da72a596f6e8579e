package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/styles"
)

var tagFilter string

var tagsCmd = &cobra.Command{
	Use:   "tags [source...]",
	Short: "Report the tag inventory of documents",
	Long: `Count every headline tag across one or more documents.

With --tag, list the sections carrying that tag instead of the
inventory. Multiple sources are parsed independently; a failure names
the source and stops.

Examples:
  org tags notes.org
  org tags notes.org journal.org --format table
  org tags notes.org --tag errand`,
	Args: cobra.ArbitraryArgs,
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().StringVar(&tagFilter, "tag", "", "List sections carrying this tag")
	rootCmd.AddCommand(tagsCmd)
}

// tagCount is one row of the tag inventory.
type tagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// taggedSection is one row of the --tag section listing.
type taggedSection struct {
	Source  string   `json:"source,omitempty"`
	Level   int      `json:"level"`
	Keyword string   `json:"keyword,omitempty"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
}

func runTags(cmd *cobra.Command, args []string) error {
	sources, err := sourcesOrStdin(args)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	matched := make([]taggedSection, 0)
	multi := len(sources) > 1

	for _, src := range sources {
		nodes, err := loadDocument(cmd, src)
		if err != nil {
			return err
		}
		for _, s := range org.Sections(nodes) {
			for _, tag := range s.Tags {
				counts[tag]++
			}
			if tagFilter != "" && hasTag(s.Tags, tagFilter) {
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
	}

	out := stdoutFromContext(cmd.Context())

	if tagFilter != "" {
		if structuredOutputRequested() {
			return printStructured(matched)
		}
		if len(matched) == 0 {
			fmt.Fprintf(out, "No sections tagged %s.\n", tagFilter)
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

	inventory := make([]tagCount, 0, len(counts))
	for tag, n := range counts {
		inventory = append(inventory, tagCount{Tag: tag, Count: n})
	}
	sort.Slice(inventory, func(i, j int) bool {
		if inventory[i].Count != inventory[j].Count {
			return inventory[i].Count > inventory[j].Count
		}
		return inventory[i].Tag < inventory[j].Tag
	})

	if structuredOutputRequested() {
		return printStructured(inventory)
	}

	if len(inventory) == 0 {
		fmt.Fprintln(out, "No tags found.")
		return nil
	}

	styled := isTerminal(out)
	for _, tc := range inventory {
		label := tc.Tag
		if styled {
			label = styles.TagStyle.Render(tc.Tag)
		}
		fmt.Fprintf(out, "%s\t%d\n", label, tc.Count)
	}
	return nil
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
