package overlay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/region"
)

func newTestOverlay(cfg Config) (*SubtitleOverlay, *MemorySurface) {
	surface := NewMemorySurface(model.Size{Width: 650, Height: 300})
	return New(cfg, surface, cea608.NewBasicMeasurer()), surface
}

func end(v float64) *float64 {
	return &v
}

func textCue(start float64, text string) *model.CueEvent {
	return &model.CueEvent{Start: start, End: end(start + 2), Text: text}
}

func gridCue(start float64, text string, row, column int) *model.CueEvent {
	return &model.CueEvent{
		Start:    start,
		End:      end(start + 2),
		Text:     text,
		Position: &model.Position{Row: row, Column: column},
	}
}

func containerIDs(o *SubtitleOverlay) []string {
	var ids []string
	for _, c := range o.Containers() {
		ids = append(ids, c.ID())
	}
	return ids
}

func TestSubtitleOverlay_EnterExit(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())
	a := textCue(1, "first")
	b := textCue(1.5, "second")

	assert.False(t, surface.Visible())
	o.CueEnter(a)
	assert.True(t, o.HasCues())
	assert.True(t, surface.Visible())
	o.CueEnter(b)
	assert.Equal(t, 2, o.CueCount())
	assert.Equal(t, []string{"default"}, containerIDs(o))

	assert.True(t, o.CueExit(a))
	assert.True(t, o.HasCues())
	assert.True(t, surface.Visible())

	assert.True(t, o.CueExit(b))
	assert.False(t, o.HasCues())
	assert.False(t, surface.Visible())
	assert.Empty(t, surface.Containers())

	assert.False(t, o.CueExit(b), "already removed")
}

func TestSubtitleOverlay_CollidingCues(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())

	first := o.CueEnter(textCue(3, "dup"))
	second := o.CueEnter(textCue(3, "dup"))
	c := o.Containers()[0]
	require.Equal(t, 2, c.Count())

	o.CueExit(textCue(3, "dup"))
	assert.Equal(t, []*model.Label{second}, c.Labels())
	assert.NotSame(t, first, c.First())
}

func TestSubtitleOverlay_UpdateWithoutEnter(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	assert.Nil(t, o.CueUpdate(textCue(1, "orphan")))
	assert.False(t, o.HasCues())
	assert.Empty(t, surface.Containers())
}

func TestSubtitleOverlay_Update(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())

	ev := textCue(1, "text")
	ev.Region = "A"
	old := o.CueEnter(ev)

	updated := textCue(1, "text")
	updated.Region = "B"
	label := o.CueUpdate(updated)
	require.NotNil(t, label)
	assert.NotSame(t, old, label)
	assert.Equal(t, []string{"B"}, containerIDs(o))
	assert.Equal(t, 1, o.CueCount())
}

func TestSubtitleOverlay_RegionLifecycle(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	ev := textCue(1, "in A")
	ev.Region = "A"
	o.CueEnter(ev)

	require.Len(t, surface.Containers(), 1)
	c := surface.Containers()[0]
	assert.Equal(t, "A", c.ID())
	assert.Equal(t, 1, c.Count())

	o.CueExit(ev)
	assert.Empty(t, surface.Containers())
}

func TestSubtitleOverlay_SeekPrunesStaleCues(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	o.CueEnter(gridCue(1, "stale", 3, 0))
	o.CueEnter(&model.CueEvent{Start: 1, End: end(30), Text: "long"})
	require.True(t, o.CEA608Enabled())

	assert.Equal(t, 1, o.Seeked(10))
	assert.Equal(t, 1, o.CueCount())
	assert.True(t, o.CEA608Enabled(), "a cue is still shown")
	assert.Equal(t, 0, o.Seeked(10))

	assert.Equal(t, 1, o.TimeShifted(40))
	assert.False(t, o.HasCues())
	assert.False(t, surface.Visible())
	assert.False(t, o.CEA608Enabled())
}

func TestSubtitleOverlay_ClearEvents(t *testing.T) {
	clears := []struct {
		name      string
		clear     func(o *SubtitleOverlay)
		resetsCEA bool
	}{
		{"audio changed", (*SubtitleOverlay).AudioChanged, false},
		{"playback finished", (*SubtitleOverlay).PlaybackFinished, false},
		{"subtitle disabled", (*SubtitleOverlay).SubtitleDisabled, true},
		{"source unloaded", (*SubtitleOverlay).SourceUnloaded, true},
	}

	for _, tt := range clears {
		t.Run(tt.name, func(t *testing.T) {
			o, surface := newTestOverlay(DefaultConfig())
			o.CueEnter(gridCue(1, "a", 2, 0))
			o.CueEnter(textCue(1, "b"))

			tt.clear(o)
			assert.False(t, o.HasCues())
			assert.False(t, surface.Visible())
			assert.Empty(t, surface.Containers())
			assert.Equal(t, !tt.resetsCEA, o.CEA608Enabled())

			assert.False(t, o.CueExit(textCue(1, "b")), "exit after clear is ignored")
		})
	}
}

func TestSubtitleOverlay_SubtitleEnabledResetsCEA608(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())
	o.CueEnter(gridCue(1, "a", 2, 0))

	o.SubtitleEnabled()
	assert.False(t, o.CEA608Enabled())
	assert.True(t, o.HasCues())
}

func TestSubtitleOverlay_CEA608FontLayout(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())
	assert.False(t, o.CEA608Enabled())

	o.CueEnter(textCue(0, "plain"))
	assert.False(t, o.CEA608Enabled(), "plain cues do not enable the grid")

	o.CueEnter(gridCue(1, "grid", 14, 0))
	require.True(t, o.CEA608Enabled())

	layout := o.FontLayout()
	assert.InDelta(t, 20, layout.FontSize, 1e-4)
	assert.InDelta(t, 20-140.0/13, layout.LetterSpacing, 1e-4)
}

func TestSubtitleOverlay_ResizeWhileDisabled(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	ev := gridCue(1, "grid", 2, 0)
	o.CueEnter(ev)
	o.CueExit(ev)
	require.False(t, o.CEA608Enabled())

	o.HandleEvent(model.Event{Kind: model.EventResized, Size: model.Size{Width: 1290, Height: 600}})
	assert.Equal(t, model.Size{Width: 1290, Height: 600}, surface.Size())
	assert.InDelta(t, 20, o.FontLayout().FontSize, 1e-4, "deferred until the next grid cue")

	o.CueEnter(gridCue(5, "again", 2, 0))
	assert.InDelta(t, 40, o.FontLayout().FontSize, 1e-4)
}

func TestSubtitleOverlay_ResizeWhileEnabled(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())
	o.CueEnter(gridCue(1, "grid", 2, 0))

	surface.Resize(model.Size{Width: 1290, Height: 600})
	o.Resized()
	assert.InDelta(t, 40, o.FontLayout().FontSize, 1e-4)
}

func TestSubtitleOverlay_RowRemapFollowsFactor(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())
	o.CueEnter(gridCue(1, "bottom row", 14, 0))

	c := o.Containers()[0]
	assert.Equal(t, "cea608-row-14", c.ID())
	assert.Equal(t, cea608.RowClass(14), c.Class())

	o.SetFontSizePercent("200", true)
	assert.Equal(t, 7, o.GridState().NumRows)
	assert.Equal(t, cea608.RowClass(6), c.Class())

	// a second remap must start from the original row again
	o.SetFontSizePercent("200", true)
	assert.Equal(t, cea608.RowClass(6), c.Class())

	o.SetFontSizePercent("", false)
	assert.Equal(t, 1.0, o.GridState().FontSizeFactor)
	assert.Equal(t, cea608.RowClass(14), c.Class())

	o.SetFontSizePercent("200", true)
	label := o.CueEnter(gridCue(2, "new", 14, 0))
	assert.Equal(t, "cea608-row-6", label.Region.ID)
	row, _ := label.OriginalRowPosition()
	assert.Equal(t, 14, row)
}

func TestResolveFontSizeFactor(t *testing.T) {
	tests := []struct {
		value    string
		expected float64
	}{
		{"150", 1.5},
		{"100", 1},
		{"50", 0.5},
		{" 200 ", 2},
		{"75%", 0.75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveFontSizeFactor(tt.value), "value %q", tt.value)
	}
	assert.True(t, math.IsNaN(ResolveFontSizeFactor("large")))
	assert.True(t, math.IsNaN(ResolveFontSizeFactor("")))
}

func TestSubtitleOverlay_SetFontSizePercentClamps(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())

	o.SetFontSizePercent("400", true)
	assert.Equal(t, 2.0, o.GridState().FontSizeFactor)
	o.SetFontSizePercent("garbage", true)
	assert.Equal(t, 1.0, o.GridState().FontSizeFactor)

	o.HandleEvent(model.Event{Kind: model.EventFontSizeChanged, FontSize: "50"})
	assert.Equal(t, 0.5, o.GridState().FontSizeFactor)
	o.HandleEvent(model.Event{Kind: model.EventFontSizeChanged})
	assert.Equal(t, 1.0, o.GridState().FontSizeFactor)
}

func TestSubtitleOverlay_FilterFontSizeOptions(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())
	options := []string{"", "50", "100", "200", "300", "400"}

	assert.Equal(t, options, o.FilterFontSizeOptions(options))

	o.CueEnter(gridCue(1, "grid", 1, 0))
	assert.Equal(t, []string{"", "50", "100", "200"}, o.FilterFontSizeOptions(options))
	assert.Equal(t, []string{"", "100", "200"}, o.FilterFontSizeOptions([]string{"", "100", "200", "300"}))
}

func TestSubtitleOverlay_Preview(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	o.EnablePreviewSubtitleLabel()
	assert.True(t, o.PreviewActive())
	assert.True(t, surface.Visible())
	require.Len(t, surface.Containers(), 1)
	assert.True(t, surface.Containers()[0].First().Preview)

	// a real cue replaces the preview
	ev := textCue(1, "real")
	o.CueEnter(ev)
	require.Len(t, surface.Containers(), 1)
	assert.Equal(t, 1, surface.Containers()[0].Count())
	assert.False(t, surface.Containers()[0].First().Preview)

	// and the preview is back once the cue is gone
	o.CueExit(ev)
	assert.True(t, surface.Visible())
	require.Len(t, surface.Containers(), 1)
	assert.True(t, surface.Containers()[0].First().Preview)

	o.RemovePreviewSubtitleLabel()
	assert.False(t, o.PreviewActive())
	assert.False(t, surface.Visible())
	assert.Empty(t, surface.Containers())

	o.RemovePreviewSubtitleLabel()
	assert.Empty(t, surface.Containers())
}

func TestSubtitleOverlay_PreviewNotShownOverCues(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())
	o.CueEnter(textCue(1, "real"))

	o.EnablePreviewSubtitleLabel()
	assert.False(t, o.PreviewActive())
	require.Len(t, surface.Containers(), 1)
	assert.Equal(t, 1, surface.Containers()[0].Count())
}

func TestSubtitleOverlay_PreviewAttachedOnce(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())

	o.EnablePreviewSubtitleLabel()
	o.EnablePreviewSubtitleLabel()
	require.Len(t, surface.Containers(), 1)
	assert.Equal(t, 1, surface.Containers()[0].Count())

	o.SetPreviewText("Пример субтитров")
	require.Len(t, surface.Containers(), 1)
	assert.Equal(t, "Пример субтитров", surface.Containers()[0].First().Text)
}

func TestSubtitleOverlay_HandleEvent(t *testing.T) {
	o, surface := newTestOverlay(DefaultConfig())
	ev := textCue(1, "hello")

	o.HandleEvent(model.Event{Kind: model.EventCueEnter, Cue: ev})
	assert.True(t, o.HasCues())
	o.HandleEvent(model.Event{Kind: model.EventCueUpdate, Cue: ev})
	assert.Equal(t, 1, o.CueCount())
	o.HandleEvent(model.Event{Kind: model.EventSeeked, Time: 1.5})
	assert.True(t, o.HasCues())
	o.HandleEvent(model.Event{Kind: model.EventCueExit, Cue: ev})
	assert.False(t, o.HasCues())
	assert.False(t, surface.Visible())

	o.HandleEvent(model.Event{Kind: model.EventCueEnter})
	assert.False(t, o.HasCues(), "cue events without payload are ignored")
}

func TestSubtitleOverlay_ZeroSizeSurface(t *testing.T) {
	surface := NewMemorySurface(model.Size{})
	o := New(DefaultConfig(), surface, cea608.NewBasicMeasurer())

	o.CueEnter(gridCue(1, "grid", 3, 0))
	assert.True(t, o.CEA608Enabled())
	assert.True(t, o.FontLayout().IsZero())
	assert.Nil(t, o.Layout())

	surface.Resize(model.Size{Width: 650, Height: 300})
	o.Resized()
	assert.InDelta(t, 20, o.FontLayout().FontSize, 1e-4)
}

func TestSubtitleOverlay_ContainerPolicies(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())

	styled := textCue(1, "styled")
	styled.Region = "top"
	styled.RegionStyle = "top: 0; left: 0; width: 50%"
	o.CueEnter(styled)

	box := textCue(1, "box")
	box.VTT = &model.VTTProperties{Size: 50}
	o.CueEnter(box)

	policies := map[string]region.Policy{}
	for _, c := range o.Containers() {
		policies[c.ID()] = c.Policy
	}
	assert.Equal(t, region.PolicyExplicit, policies["top"])
	assert.Equal(t, region.PolicyStatic, policies["vtt"])
}

func TestSubtitleOverlay_RecalculateCEAGrid(t *testing.T) {
	o, _ := newTestOverlay(DefaultConfig())

	o.SetFontSizeFactor(2)
	o.RecalculateCEAGrid()
	state := o.GridState()
	assert.Equal(t, 2.0, state.FontSizeFactor)
	assert.Equal(t, 7, state.NumRows)
	assert.Equal(t, 16, state.NumColumns)
	assert.InDelta(t, 100.0/16, state.ColumnOffset, 1e-9)
}
