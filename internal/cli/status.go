package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/pkgdex-labs/pkgdex/internal/config"
	"github.com/pkgdex-labs/pkgdex/internal/source"
	"github.com/pkgdex-labs/pkgdex/internal/version"
	"github.com/spf13/cobra"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report snapshot state per registry source",
	Long: `Report, for each configured source: whether a local snapshot is
installed, its version and age, the currently published remote version, and
whether the catalog file drifted from its recorded checksum.`,
	RunE: runStatus,
}

// sourceStatus is the status report for one source.
type sourceStatus struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Installed       bool   `json:"installed"`
	LocalVersion    string `json:"local_version,omitempty"`
	SnapshotAge     string `json:"snapshot_age,omitempty"`
	RemoteVersion   string `json:"remote_version,omitempty"`
	RemoteError     string `json:"remote_error,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
	CatalogDrift    bool   `json:"catalog_drift"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	specs, err := loadSpecs()
	if err != nil {
		return fmt.Errorf("loading registry sources: %w", err)
	}

	var statuses []sourceStatus
	for _, spec := range specs {
		src := source.NewHTTP(spec, filepath.Join(config.RegistriesDir(), spec.ID))
		statuses = append(statuses, collectStatus(cmd, src))
	}

	if statusJSON {
		out, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling status: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tLOCAL\tAGE\tREMOTE\tUPDATE\tDRIFT")
	for _, st := range statuses {
		local := "-"
		if st.Installed {
			local = st.LocalVersion
		}
		remote := st.RemoteVersion
		if st.RemoteError != "" {
			remote = "unreachable"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			st.ID, local, orDash(st.SnapshotAge), orDash(remote),
			yesNo(st.UpdateAvailable), yesNo(st.CatalogDrift))
	}
	return w.Flush()
}

func collectStatus(cmd *cobra.Command, src *source.HTTPSource) sourceStatus {
	st := sourceStatus{
		ID:        src.ID(),
		Label:     src.DisplayLabel(),
		Installed: src.IsInstalled(),
	}

	if st.Installed {
		if info, err := src.Store().ReadInfo(); err == nil {
			st.LocalVersion = info.Version
			if info.DownloadTimestamp > 0 {
				age := time.Since(time.Unix(info.DownloadTimestamp, 0))
				st.SnapshotAge = age.Round(time.Minute).String()
			}
			if want, ok := info.Checksums["registry.json"]; ok {
				if got, err := src.Store().CatalogChecksum(); err == nil && got != want {
					st.CatalogDrift = true
				}
			}
		}
	}

	remote, err := src.RemoteVersion(cmd.Context())
	if err != nil {
		st.RemoteError = err.Error()
		return st
	}
	st.RemoteVersion = remote
	if st.Installed {
		st.UpdateAvailable = version.UpdateAvailable(st.LocalVersion, remote)
	} else {
		st.UpdateAvailable = true
	}
	return st
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
