package cmd

import (
	"fmt"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/org-cli/internal/org"
	"github.com/salmonumbrella/org-cli/internal/source"
)

var (
	fmtWrite bool
	fmtDiff  bool
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [source]",
	Short: "Reformat a document into its canonical form",
	Long: `Parse a document and print it back in canonical form: headlines
normalized to "stars keyword title :tags:", drawer and block delimiters
uppercased, content lines kept as written.

By default the formatted text goes to stdout. --write rewrites a local
file in place, --diff prints a unified diff instead, and --check exits
non-zero when the document is not already canonical.

Examples:
  org fmt notes.org
  org fmt --diff notes.org
  org fmt --write notes.org
  org fmt --check notes.org`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite the source file in place")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Print a unified diff instead of the formatted text")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit non-zero if the document is not canonical")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	src, err := sourceOrStdin(args)
	if err != nil {
		return err
	}

	if fmtWrite && (src == "-" || source.IsRemote(src)) {
		return fmt.Errorf("--write needs a local file, not %s", src)
	}

	content, nodes, err := loadDocumentContent(cmd, src)
	if err != nil {
		return err
	}

	formatted := org.Render(nodes)
	changed := formatted != content
	out := stdoutFromContext(cmd.Context())

	switch {
	case fmtCheck:
		if changed {
			return fmt.Errorf("%s is not formatted", src)
		}
		return nil
	case fmtDiff:
		if !changed {
			return nil
		}
		edits := myers.ComputeEdits(span.URIFromPath(src), content, formatted)
		fmt.Fprint(out, gotextdiff.ToUnified(src, src+" (formatted)", content, edits))
		return nil
	case fmtWrite:
		if !changed {
			return nil
		}
		path := resolveLocalSource(currentConfig, src)
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, []byte(formatted), mode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	default:
		fmt.Fprint(out, formatted)
		return nil
	}
}
