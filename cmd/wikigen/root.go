package main

import (
	"wikigen/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikigen",
	Short: "wikigen - generated wiki documentation for a source repository",
	Long: `wikigen walks a repository, parses every source file it recognizes, and
builds a browsable wiki of file, directory, and architecture pages under
.wikigen/wiki. Re-running it regenerates only what actually changed.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("wikigen version {{.Version}}\n")
}
