package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync [source-id...]",
	Short: "Synchronize local registry snapshots",
	Long: `Synchronize the local snapshots of all configured registry sources, or
only the named ones. A source whose remote version is unchanged is left
untouched. Failing sources do not stop the others.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("loading registry sources: %w", err)
	}

	if err := reg.SyncAll(cmd.Context(), args...); err != nil {
		return fmt.Errorf("synchronizing registries: %w", err)
	}

	for _, s := range reg.Sources() {
		if len(args) > 0 && !slices.Contains(args, s.ID()) {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.DisplayLabel())
	}
	return nil
}
