package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var indexClear bool

var indexCmd = &cobra.Command{
	Use:   "index [domain]",
	Short: "Index a domain's examples into the vector store",
	Long: `Parses every example file under the domain's examples directory and
indexes it for semantic retrieval. Files that fail to parse are reported
and skipped; the rest are indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexClear, "clear", false, "remove existing entries for the domain first")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	name := args[0]

	svcs, err := getServices()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if indexClear {
		removed, err := svcs.Index.ClearDomain(ctx, name)
		if err != nil {
			return fmt.Errorf("clearing domain: %w", err)
		}
		cmd.Printf("Removed %d existing entries\n", removed)
	}

	report, err := svcs.Index.IndexDomain(ctx, name)
	if err != nil {
		return fmt.Errorf("indexing domain: %w", err)
	}

	cmd.Printf("Indexed %d examples from %s\n", report.Indexed, name)
	if len(report.Failed) > 0 {
		cmd.Printf("%d files failed:\n", len(report.Failed))
		files := make([]string, 0, len(report.Failed))
		for file := range report.Failed {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			cmd.Printf("  %s: %s\n", file, report.Failed[file])
		}
	}
	return nil
}
