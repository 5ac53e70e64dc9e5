package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	analyzeDomain string
	analyzeTask   string
	analyzeBudget int
	analyzeFile   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [subject]",
	Short: "Analyze a subject against a domain's expertise",
	Long: `Assembles a context for the task and asks the configured model to
analyze the subject against it. The subject is given inline or read
from a file with --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeDomain, "domain", "d", "", "domain to draw from (required)")
	analyzeCmd.Flags().StringVarP(&analyzeTask, "task", "t", "", "task name used for rubric matching")
	analyzeCmd.Flags().IntVarP(&analyzeBudget, "budget", "b", 0, "token budget (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the subject from a file")
	_ = analyzeCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	subject := ""
	if len(args) == 1 {
		subject = args[0]
	}
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return fmt.Errorf("reading subject file: %w", err)
		}
		subject = string(data)
	}
	if subject == "" {
		return errors.New("provide a subject inline or with --file")
	}

	svcs, err := getServices()
	if err != nil {
		return err
	}
	if svcs.Analysis == nil {
		return errors.New("analysis requires a generation model; set an API key in the config")
	}

	result, err := svcs.Analysis.Analyze(cmd.Context(), analyzeDomain, analyzeTask, subject, analyzeBudget)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	cmd.Println(result)
	return nil
}
