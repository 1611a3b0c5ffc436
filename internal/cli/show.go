package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkgdex-labs/pkgdex/internal/source"
	"github.com/spf13/cobra"
)

var (
	showSourceFilter string
	showJSON         bool
)

func init() {
	showCmd.Flags().StringVar(&showSourceFilter, "source", "", "Look up the package in this source only")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <package>",
	Short: "Show one package's descriptor",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("loading registry sources: %w", err)
	}

	var pkg *source.Package
	if showSourceFilter != "" {
		s, ok := reg.Source(showSourceFilter)
		if !ok {
			return fmt.Errorf("unknown source %q", showSourceFilter)
		}
		pkg, ok = s.Package(name)
		if !ok {
			return fmt.Errorf("package %q not found in source %s", name, showSourceFilter)
		}
	} else {
		var ok bool
		pkg, ok = reg.FindPackage(name)
		if !ok {
			return fmt.Errorf("package %q not found", name)
		}
	}

	if showJSON {
		out, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling package: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:        %s\n", pkg.Name)
	fmt.Fprintf(out, "Version:     %s\n", pkg.Version)
	fmt.Fprintf(out, "Source:      %s\n", pkg.SourceID)
	if pkg.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", pkg.Description)
	}
	if pkg.Homepage != "" {
		fmt.Fprintf(out, "Homepage:    %s\n", pkg.Homepage)
	}
	if len(pkg.Licenses) > 0 {
		fmt.Fprintf(out, "Licenses:    %s\n", strings.Join(pkg.Licenses, ", "))
	}
	if pkg.InstalledVersion != "" {
		fmt.Fprintf(out, "Installed:   %s\n", pkg.InstalledVersion)
	}
	return nil
}
