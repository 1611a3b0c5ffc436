package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listSourceFilter string
	listJSON         bool
)

func init() {
	listCmd.Flags().StringVar(&listSourceFilter, "source", "", "Only list packages from this source id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages from the mirrored registries",
	Long:  `List the packages known to the locally mirrored registry snapshots.`,
	RunE:  runList,
}

// listEntry represents one package for display.
type listEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("loading registry sources: %w", err)
	}

	var entries []listEntry
	for _, s := range reg.Sources() {
		if listSourceFilter != "" && s.ID() != listSourceFilter {
			continue
		}
		for _, p := range s.PackageSpecs() {
			entries = append(entries, listEntry{
				Name:        p.Name,
				Version:     p.Version,
				Description: p.Description,
				Source:      p.SourceID,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Source < entries[j].Source
	})

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling package list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No packages found. Run '%s sync' first.\n", rootCmd.Name())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Source, e.Description)
	}
	return w.Flush()
}
