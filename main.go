package main

import (
	"os"

	"github.com/pkgdex-labs/pkgdex/internal/cli"
	"github.com/pkgdex-labs/pkgdex/internal/logging"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(version, commit, date)
	_ = logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
