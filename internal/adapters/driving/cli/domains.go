package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List available domains",
	Args:  cobra.NoArgs,
	RunE:  runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}

func runDomains(cmd *cobra.Command, _ []string) error {
	svcs, err := getServices()
	if err != nil {
		return err
	}

	names, err := svcs.Domain.ListDomains()
	if err != nil {
		return fmt.Errorf("listing domains: %w", err)
	}
	if len(names) == 0 {
		cmd.Println("No domains found.")
		return nil
	}

	for _, name := range names {
		count, err := svcs.Index.Count(cmd.Context(), name)
		if err != nil {
			cmd.Printf("%s\n", name)
			continue
		}
		cmd.Printf("%s (%d indexed examples)\n", name, count)
	}
	return nil
}
