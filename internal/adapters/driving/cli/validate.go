package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [domain]",
	Short: "Check a domain's structure and coverage",
	Long: `Reports structural problems and thin coverage for a domain.
Blocking issues make the command fail; warnings do not.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	name := args[0]

	svcs, err := getServices()
	if err != nil {
		return err
	}

	result, err := svcs.Domain.Validate(name)
	if err != nil {
		return fmt.Errorf("validating domain: %w", err)
	}

	cmd.Printf("%s: %d principles, %d rubrics, %d examples\n",
		name, result.Stats.Principles, result.Stats.Rubrics, result.Stats.Examples)

	for _, issue := range result.Issues {
		cmd.Printf("ERROR: %s\n", issue)
	}
	for _, warning := range result.Warnings {
		cmd.Printf("WARNING: %s\n", warning)
	}

	if !result.Valid {
		return fmt.Errorf("domain %s has blocking issues", name)
	}
	cmd.Println("OK")
	return nil
}
