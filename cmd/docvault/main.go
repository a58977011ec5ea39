// Command docvault is a personal PDF document archive.
package main

import (
	"os"

	"github.com/custodia-labs/docvault/internal/adapters/driving/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	// cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
