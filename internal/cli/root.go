package cli

import (
	"github.com/pkgdex-labs/pkgdex/internal/branding"
	"github.com/pkgdex-labs/pkgdex/internal/config"
	"github.com/pkgdex-labs/pkgdex/internal/logging"
	"github.com/pkgdex-labs/pkgdex/internal/registry"
	"github.com/pkgdex-labs/pkgdex/internal/source"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps local mirrors of remote package registries and answers
package queries against them. A registry is re-downloaded only when its
published version changed; queries never touch the network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}
		// The flag must win before the config file is located.
		if dataDir != "" {
			config.OverrideDataDir(dataDir)
		}
		config.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory (default ~/"+branding.HomeDir()+")")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// loadSpecs reads the declared sources as source specs.
func loadSpecs() ([]source.Spec, error) {
	declared, err := config.LoadSources()
	if err != nil {
		return nil, err
	}
	specs := make([]source.Spec, len(declared))
	for i, d := range declared {
		specs[i] = source.Spec{ID: d.ID, Name: d.Name, URL: d.URL}
	}
	return specs, nil
}

// buildRegistry wires the aggregate registry over the declared sources.
func buildRegistry() (*registry.Registry, error) {
	specs, err := loadSpecs()
	if err != nil {
		return nil, err
	}
	return registry.FromSpecs(specs, config.RegistriesDir()), nil
}
