package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [domain]",
	Short: "Remove a domain's entries from the vector store",
	Long: `Removes every indexed example for the domain. The files on disk are
untouched; re-run index to restore the entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	svcs, err := getServices()
	if err != nil {
		return err
	}

	removed, err := svcs.Index.ClearDomain(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("deleting domain entries: %w", err)
	}

	cmd.Printf("Removed %d entries for %s\n", removed, name)
	return nil
}
