package commands

import (
	"fmt"

	"elmora/internal/output"
)

// Version information, set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// RunVersion prints the version.
func RunVersion() {
	output.Print(map[string]string{"version": Version, "commit": Commit, "date": Date}, func() {
		fmt.Printf("elmora version %s (commit %s, built %s)\n", Version, Commit, Date)
	})
}
