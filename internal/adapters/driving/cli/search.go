package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

var (
	searchDomain   string
	searchCategory string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed contrast examples",
	Long: `Searches a domain's indexed examples by semantic similarity and
prints the best matches with their scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDomain, "domain", "d", "", "domain to search (required)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict to a category")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	_ = searchCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	svcs, err := getServices()
	if err != nil {
		return err
	}

	results, err := svcs.Index.Search(cmd.Context(), query, searchDomain, searchCategory, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return printSearchResults(cmd, results)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printSearchResults(cmd *cobra.Command, results []domain.ContrastExample) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range results {
		e := &results[i]
		cmd.Printf("[%d] %s (%.3f)\n", i+1, e.ID, e.Similarity)
		if e.Category != "" {
			cmd.Printf("    category: %s\n", e.Category)
		}
		if e.TeachingPoint != "" {
			cmd.Printf("    %s\n", e.TeachingPoint)
		}
	}
	return nil
}
