package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured registry sources",
	RunE:  runSources,
}

func runSources(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("loading registry sources: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS")
	for _, s := range reg.Sources() {
		fmt.Fprintf(w, "%s\t%s\n", s.ID(), s.DisplayLabel())
	}
	return w.Flush()
}
