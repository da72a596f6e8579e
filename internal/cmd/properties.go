package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/styles"
)

var propertyKey string

var propertiesCmd = &cobra.Command{
	Use:   "properties [source]",
	Short: "List drawer properties of a document",
	Long: `List every :KEY: value entry from the property drawers of a
document, together with the section each drawer belongs to.

With --key, only entries with that key are listed.

Examples:
  org properties notes.org
  org properties notes.org --key ID
  org properties notes.org --format table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProperties,
}

func init() {
	propertiesCmd.Flags().StringVar(&propertyKey, "key", "", "Only show properties with this key")
	rootCmd.AddCommand(propertiesCmd)
}

// propertyEntry is one row of the property listing.
type propertyEntry struct {
	Section string `json:"section,omitempty"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func runProperties(cmd *cobra.Command, args []string) error {
	src, err := sourceOrStdin(args)
	if err != nil {
		return err
	}

	nodes, err := loadDocument(cmd, src)
	if err != nil {
		return err
	}

	entries := collectProperties(nodes, propertyKey)

	if structuredOutputRequested() {
		return printStructured(entries)
	}

	out := stdoutFromContext(cmd.Context())
	if len(entries) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	styled := isTerminal(out)
	for _, e := range entries {
		key := ":" + e.Key + ":"
		if styled {
			key = styles.PropertyStyle.Render(key)
		}
		line := fmt.Sprintf("%s %s", key, e.Value)
		if e.Section != "" {
			section := "(" + e.Section + ")"
			if styled {
				section = styles.DimStyle.Render(section)
			}
			line += " " + section
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// collectProperties walks the node sequence gathering drawer items,
// remembering the nearest enclosing section title.
func collectProperties(nodes []*org.Node, keyFilter string) []propertyEntry {
	entries := make([]propertyEntry, 0)

	var visit func(n *org.Node, section string)
	visit = func(n *org.Node, section string) {
		if n.Type == org.NodeSection {
			section = n.Title
		}
		if n.Type == org.NodeDrawer {
			for _, p := range n.Properties() {
				if keyFilter != "" && !strings.EqualFold(p.Key, keyFilter) {
					continue
				}
				entries = append(entries, propertyEntry{
					Section: section,
					Key:     p.Key,
					Value:   p.Value,
				})
			}
		}
		for _, c := range n.Content {
			visit(c, section)
		}
	}

	for _, n := range nodes {
		visit(n, "")
	}
	return entries
}
