package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	contextDomain string
	contextTask   string
	contextBudget int
	contextJSON   bool
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Assemble an analysis context for a task",
	Long: `Builds a token-budgeted context from the domain's knowledge tiers:
principles always, the task rubric when one matches, and the examples
closest to the query that fit the remaining budget.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().StringVarP(&contextDomain, "domain", "d", "", "domain to draw from (required)")
	contextCmd.Flags().StringVarP(&contextTask, "task", "t", "", "task name used for rubric matching")
	contextCmd.Flags().IntVarP(&contextBudget, "budget", "b", 0, "token budget (default from config)")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "output the context as JSON")
	_ = contextCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	query := args[0]

	svcs, err := getServices()
	if err != nil {
		return err
	}

	result, err := svcs.Context.PrepareContext(cmd.Context(), contextDomain, contextTask, query, contextBudget)
	if err != nil {
		return fmt.Errorf("preparing context: %w", err)
	}

	if contextJSON {
		return printJSON(cmd, result)
	}

	if result.Principles != "" {
		cmd.Println("# PRINCIPLES")
		cmd.Println()
		cmd.Println(result.Principles)
	}
	if result.Rubric != nil {
		cmd.Println("# RUBRIC")
		cmd.Println()
		cmd.Println(result.Rubric.Render())
	}
	for i := range result.Examples {
		cmd.Printf("# EXAMPLE %d: %s\n\n", i+1, result.Examples[i].ID)
		cmd.Println(result.Examples[i].Render())
	}
	cmd.Printf("(%d tokens)\n", result.TokenCount)
	return nil
}
