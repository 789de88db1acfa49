package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/subtitle-overlay/internal/platform"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <timeline>...",
		Short: "Load timelines concurrently and print a summary of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timelines, err := platform.LoadTimelines(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, t := range timelines {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %q, %d cues, %d events, %.2fs, %gx%g\n",
					t.Path(), t.Title, len(t.Cues), len(t.Events), t.Duration, t.Size.Width, t.Size.Height)
			}
			return nil
		},
	}
}

func newLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest [dir]",
		Short: "Print the most recently modified timeline of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			} else {
				home, err := platform.GetHomeTimelineDir()
				if err != nil {
					return err
				}
				dir = home
			}

			path, err := platform.FindLatestTimeline(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
