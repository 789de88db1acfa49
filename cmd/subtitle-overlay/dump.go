package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/overlay"
	"github.com/ytget/subtitle-overlay/internal/platform"
	"github.com/ytget/subtitle-overlay/internal/playback"
)

type dumpOptions struct {
	step          float64
	width         float32
	height        float32
	fontSize      string
	forceIntoView bool
	at            []float64
}

func newDumpCommand() *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump <timeline>",
		Short: "Replay a timeline and print the overlay layout after every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeline, err := platform.LoadTimeline(args[0])
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), timeline, opts)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.step, "step", 0.5, "replay step in seconds")
	flags.Float32Var(&opts.width, "width", 0, "overlay width in pixels, overrides the timeline size")
	flags.Float32Var(&opts.height, "height", 0, "overlay height in pixels, overrides the timeline size")
	flags.StringVar(&opts.fontSize, "font-size", "", "font size preference in percent, such as 150")
	flags.BoolVar(&opts.forceIntoView, "force-into-view", false, "keep labels inside the overlay")
	flags.Float64SliceVar(&opts.at, "at", nil, "seek to these times instead of replaying")
	return cmd
}

// dump replays timeline against an in-memory surface and writes a YAML
// document per snapshot
func dump(w io.Writer, timeline *platform.Timeline, opts dumpOptions) error {
	if opts.step <= 0 {
		return errors.Errorf("step must be positive, got %v", opts.step)
	}
	if opts.width > 0 && opts.height > 0 {
		timeline.Size = model.Size{Width: opts.width, Height: opts.height}
	}

	cfg := overlay.DefaultConfig()
	cfg.ForceIntoView = opts.forceIntoView
	surface := overlay.NewMemorySurface(timeline.Size)
	o := overlay.New(cfg, surface, cea608.NewBasicMeasurer())
	player := playback.NewPlayer(timeline)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	apply := func(events []model.Event) {
		for _, ev := range events {
			o.HandleEvent(ev)
		}
	}

	apply(player.Start())
	if opts.fontSize != "" {
		o.SetFontSizePercent(opts.fontSize, true)
	}
	if err := enc.Encode(o.Snapshot(player.Position())); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	if len(opts.at) > 0 {
		for _, t := range opts.at {
			apply(player.Seek(t))
			if err := enc.Encode(o.Snapshot(player.Position())); err != nil {
				return errors.Wrap(err, "encode snapshot")
			}
		}
		return nil
	}

	for !player.Finished() {
		events := player.Step(opts.step)
		if len(events) == 0 {
			continue
		}
		apply(events)
		if err := enc.Encode(o.Snapshot(player.Position())); err != nil {
			return errors.Wrap(err, "encode snapshot")
		}
	}
	return nil
}
