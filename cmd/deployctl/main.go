// Package main is the entry point for the deployctl CLI.
//
// deployctl provisions and deploys the wallet-tracker service as an
// idempotent checklist: every run converges cloud resources (APIs, secret,
// identity, warehouse table, service) toward the configured state and only
// creates what is missing.
//
// Commands: init, deploy, doctor, cleanup, version, completion.
//
// For detailed usage information, run:
//
//	deployctl --help
package main

import (
	"fmt"
	"os"

	"github.com/wallettrack/deployctl/cmd/deployctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
