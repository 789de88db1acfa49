package platform

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// TimelineVersion is the only supported timeline file version
const TimelineVersion = 1

// Timeline is a recorded subtitle track together with the player events that
// happened while it played
type Timeline struct {
	Version  int        `yaml:"version"`
	Title    string     `yaml:"title,omitempty"`
	Duration float64    `yaml:"duration"`
	Size     model.Size `yaml:"size"`
	// FontSize is the initial font size preference in percent, empty if unset
	FontSize string          `yaml:"fontSize,omitempty"`
	Cues     []TimelineCue   `yaml:"cues"`
	Events   []ScriptedEvent `yaml:"events,omitempty"`

	path string
}

// TimelineCue is a cue and its live updates
type TimelineCue struct {
	model.CueEvent `yaml:",inline"`
	Updates        []CueChange `yaml:"updates,omitempty"`
}

// CueChange changes the content of an active cue at a point in time. The text
// is part of the cue identity and cannot change.
type CueChange struct {
	At   float64  `yaml:"at"`
	HTML string   `yaml:"html,omitempty"`
	End  *float64 `yaml:"end,omitempty"`
}

// ScriptedEvent is a non cue player event at a point in time
type ScriptedEvent struct {
	At       float64         `yaml:"at"`
	Kind     model.EventKind `yaml:"kind"`
	Time     float64         `yaml:"time,omitempty"`
	Size     model.Size      `yaml:"size,omitempty"`
	FontSize string          `yaml:"fontSize,omitempty"`
}

// Path returns the file the timeline was loaded from
func (t *Timeline) Path() string {
	return t.path
}

// Event converts a scripted event into a player event
func (e ScriptedEvent) Event() model.Event {
	return model.Event{Kind: e.Kind, Time: e.Time, Size: e.Size, FontSize: e.FontSize}
}

// Validate checks the timeline for values the player cannot replay
func (t *Timeline) Validate() error {
	if t.Version != TimelineVersion {
		return errors.Errorf("unsupported timeline version %d", t.Version)
	}
	if t.Duration <= 0 {
		return errors.Errorf("invalid duration %v", t.Duration)
	}

	for i, c := range t.Cues {
		if c.Start < 0 {
			return errors.Errorf("cue %d: negative start %v", i, c.Start)
		}
		if c.End != nil && *c.End <= c.Start {
			return errors.Errorf("cue %d: end %v not after start %v", i, *c.End, c.Start)
		}
		for j, u := range c.Updates {
			if !c.Encloses(u.At) {
				return errors.Errorf("cue %d update %d: time %v outside cue", i, j, u.At)
			}
		}
	}

	for i, e := range t.Events {
		if e.Kind.IsCueEvent() {
			return errors.Errorf("event %d: cue events belong to cues", i)
		}
		if !knownEventKinds[e.Kind] {
			return errors.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
	}
	return nil
}

var knownEventKinds = map[model.EventKind]bool{
	model.EventSeeked:           true,
	model.EventTimeShifted:      true,
	model.EventResized:          true,
	model.EventAudioChanged:     true,
	model.EventSubtitleEnabled:  true,
	model.EventSubtitleDisabled: true,
	model.EventPlaybackFinished: true,
	model.EventSourceUnloaded:   true,
	model.EventFontSizeChanged:  true,
	model.EventControlBarShown:  true,
	model.EventControlBarHidden: true,
}

// SortedCues returns the cues ordered by start time, keeping file order for equal starts
func (t *Timeline) SortedCues() []TimelineCue {
	cues := make([]TimelineCue, len(t.Cues))
	copy(cues, t.Cues)
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
	return cues
}

// ParseTimeline decodes and validates a timeline document
func ParseTimeline(data []byte) (*Timeline, error) {
	var t Timeline
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(err, "decode timeline")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTimeline reads a timeline file
func LoadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read timeline %s", path)
	}

	t, err := ParseTimeline(data)
	if err != nil {
		return nil, errors.Wrapf(err, "timeline %s", path)
	}
	t.path = path
	return t, nil
}

// SaveTimeline writes a timeline file, creating the directory if needed
func SaveTimeline(path string, t *Timeline) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "encode timeline")
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "write timeline %s", path)
	}
	t.path = path
	return nil
}

// LoadTimelines reads several timeline files concurrently. The result keeps
// the order of paths; the first error cancels the remaining reads.
func LoadTimelines(ctx context.Context, paths []string) ([]*Timeline, error) {
	timelines := make([]*Timeline, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := LoadTimeline(path)
			if err != nil {
				return err
			}
			timelines[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return timelines, nil
}
