package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/overlay"
	"github.com/ytget/subtitle-overlay/internal/platform"
)

func end(v float64) *float64 {
	return &v
}

func testTimeline() *platform.Timeline {
	return &platform.Timeline{
		Version:  1,
		Duration: 10,
		Size:     model.Size{Width: 650, Height: 300},
		Cues: []platform.TimelineCue{
			{CueEvent: model.CueEvent{Start: 1, End: end(3), Text: "one"}},
			{
				CueEvent: model.CueEvent{Start: 2, End: end(5), Text: "two", Position: &model.Position{Row: 14}},
				Updates:  []platform.CueChange{{At: 4, HTML: "<b>two</b>"}},
			},
			{CueEvent: model.CueEvent{Start: 6, End: end(8), Text: "three"}},
		},
	}
}

func kinds(events []model.Event) []model.EventKind {
	out := make([]model.EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestPlayer_Start(t *testing.T) {
	tl := testTimeline()
	tl.FontSize = "150"
	p := NewPlayer(tl)

	events := p.Start()
	assert.Equal(t, []model.EventKind{model.EventResized, model.EventFontSizeChanged, model.EventSubtitleEnabled}, kinds(events))
	assert.Equal(t, tl.Size, events[0].Size)
	assert.Equal(t, "150", events[1].FontSize)
}

func TestPlayer_StartResumes(t *testing.T) {
	tl := testTimeline()
	tl.FontSize = "150"
	p := NewPlayer(tl)

	p.Start()
	p.Step(2.5)
	assert.Empty(t, p.Start(), "resuming repeats nothing")

	p.Seek(6.5)
	p.Step(0.5)
	events := p.Start()
	assert.NotContains(t, kinds(events), model.EventSubtitleEnabled)
	assert.NotContains(t, kinds(events), model.EventFontSizeChanged)
}

func TestPlayer_ResumeKeepsGridCues(t *testing.T) {
	p := NewPlayer(testTimeline())
	o := overlay.New(overlay.DefaultConfig(), overlay.NewMemorySurface(model.Size{Width: 650, Height: 300}), cea608.NewBasicMeasurer())

	apply := func(events []model.Event) {
		for _, ev := range events {
			o.HandleEvent(ev)
		}
	}
	apply(p.Start())
	apply(p.Step(2.5))
	require.True(t, o.CEA608Enabled())

	apply(p.Start())
	assert.True(t, o.CEA608Enabled())
	assert.Equal(t, 2, o.CueCount())
}

func TestPlayer_StepOrder(t *testing.T) {
	p := NewPlayer(testTimeline())
	p.Start()

	events := p.Step(2.5)
	require.Equal(t, []model.EventKind{model.EventCueEnter, model.EventCueEnter}, kinds(events))
	assert.Equal(t, "one", events[0].Cue.Text)
	assert.Equal(t, "two", events[1].Cue.Text)

	events = p.Step(2)
	require.Equal(t, []model.EventKind{model.EventCueExit, model.EventCueUpdate}, kinds(events))
	assert.Equal(t, "<b>two</b>", events[1].Cue.HTML)

	events = p.Step(10)
	assert.Equal(t, []model.EventKind{
		model.EventCueExit,
		model.EventCueEnter,
		model.EventCueExit,
		model.EventPlaybackFinished,
	}, kinds(events))
	assert.True(t, p.Finished())
	assert.Nil(t, p.Step(1))
}

func TestPlayer_SeekSkipsExits(t *testing.T) {
	p := NewPlayer(testTimeline())
	p.Start()
	p.Step(1.5)

	events := p.Seek(6.5)
	assert.Equal(t, []model.EventKind{model.EventSeeked, model.EventCueEnter}, kinds(events))
	assert.Equal(t, 6.5, events[0].Time)
	assert.Equal(t, "three", events[1].Cue.Text)

	// seeking back re-enters the cue
	events = p.Seek(2.5)
	assert.Equal(t, []model.EventKind{model.EventSeeked, model.EventCueEnter, model.EventCueEnter}, kinds(events))
}

func TestPlayer_ScriptedEvents(t *testing.T) {
	tl := testTimeline()
	tl.Events = []platform.ScriptedEvent{
		{At: 1.5, Kind: model.EventResized, Size: model.Size{Width: 1290, Height: 600}},
		{At: 2.5, Kind: model.EventSeeked, Time: 7},
		{At: 8.5, Kind: model.EventFontSizeChanged, FontSize: "200"},
	}
	p := NewPlayer(tl)
	p.Start()

	events := p.Step(1.75)
	require.Equal(t, []model.EventKind{model.EventCueEnter, model.EventResized}, kinds(events))
	assert.Equal(t, model.Size{Width: 1290, Height: 600}, events[1].Size)

	events = p.Step(1)
	assert.Equal(t, []model.EventKind{model.EventCueEnter, model.EventSeeked, model.EventCueEnter}, kinds(events))
	assert.Equal(t, "three", events[2].Cue.Text)
	assert.Equal(t, 7.0, p.Position())

	events = p.Step(2)
	assert.Equal(t, []model.EventKind{model.EventCueExit, model.EventFontSizeChanged}, kinds(events))
	assert.Equal(t, "200", events[1].FontSize)
}

func TestPlayer_DrivesOverlay(t *testing.T) {
	tl := testTimeline()
	p := NewPlayer(tl)
	surface := overlay.NewMemorySurface(model.Size{})
	o := overlay.New(overlay.DefaultConfig(), surface, cea608.NewBasicMeasurer())

	apply := func(events []model.Event) {
		for _, ev := range events {
			o.HandleEvent(ev)
		}
	}

	apply(p.Start())
	assert.Equal(t, tl.Size, surface.Size())

	apply(p.Step(2.5))
	assert.Equal(t, 2, o.CueCount())
	assert.True(t, o.CEA608Enabled())

	// the seek jumps over both exits; the overlay prunes the stale cues
	apply(p.Seek(6.5))
	assert.Equal(t, 1, o.CueCount())
	assert.False(t, o.CEA608Enabled())

	apply(p.Step(10))
	assert.False(t, o.HasCues())
	assert.False(t, surface.Visible())
}

func TestPump(t *testing.T) {
	in := make(chan model.Event, 3)
	in <- model.Event{Kind: model.EventSeeked, Time: 1}
	in <- model.Event{Kind: model.EventSeeked, Time: 2}
	close(in)

	var got []float64
	err := Pump(context.Background(), in, HandlerFunc(func(ev model.Event) {
		got = append(got, ev.Time)
	}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Pump(ctx, make(chan model.Event), HandlerFunc(func(model.Event) {}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayer_Run(t *testing.T) {
	tl := testTimeline()
	tl.Duration = 2
	p := NewPlayer(tl)
	p.SetTick(time.Millisecond)
	p.SetRate(100)

	var positions []float64
	p.SetUpdateCallback(func(position float64) {
		positions = append(positions, position)
	})

	out := make(chan model.Event, 64)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx, out))
	close(out)

	var all []model.Event
	for ev := range out {
		all = append(all, ev)
	}
	require.NotEmpty(t, all)
	assert.Equal(t, model.EventPlaybackFinished, all[len(all)-1].Kind)
	assert.NotEmpty(t, positions)
	assert.Equal(t, 2.0, p.Position())
}

func TestPlayer_RunCancelled(t *testing.T) {
	p := NewPlayer(testTimeline())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, make(chan model.Event, 16))
	assert.ErrorIs(t, err, context.Canceled)
}
