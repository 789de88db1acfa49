package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subtitle-overlay",
		Short:         "Inspect subtitle timelines without a display",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newDumpCommand(),
		newValidateCommand(),
		newLatestCommand(),
	)
	return rootCmd
}
