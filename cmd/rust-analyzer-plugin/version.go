package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// overridden with ldflags
var Version = "dev"
var Commit = ""
var Date = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rust-analyzer-plugin %s\n", versionString())
	},
}

func versionString() string {
	version := Version

	if Date != "" && Commit != "" {
		version += " (" + Date + " commit " + Commit + ")"
	}

	return version
}
