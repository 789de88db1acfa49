package overlay

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/cue"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/region"
)

// SubtitleOverlay displays the active subtitles of one player. It is not safe
// for concurrent use: all methods must be called from the goroutine that
// delivers the player events.
type SubtitleOverlay struct {
	cfg      Config
	surface  Surface
	measurer cea608.GlyphMeasurer

	tracker *cue.Tracker
	regions *region.Manager
	engine  *cea608.Engine

	// textScale is the raw font size preference for non grid labels
	textScale float64

	preview         *model.Label
	previewActive   bool
	previewAttached bool

	controlBarVisible bool
}

// New creates an overlay rendering to surface. measurer supplies glyph metrics
// for the CEA-608 grid and text sizes.
func New(cfg Config, surface Surface, measurer cea608.GlyphMeasurer) *SubtitleOverlay {
	cfg = cfg.withDefaults()
	o := &SubtitleOverlay{
		cfg:       cfg,
		surface:   surface,
		measurer:  measurer,
		tracker:   cue.NewTracker(),
		regions:   region.NewManager(surface),
		engine:    cea608.NewEngine(cfg.CEA608),
		textScale: 1,
		preview:   cue.BuildPreviewLabel(cfg.PreviewText),
	}
	o.clearSubtitles()
	return o
}

// Config returns the overlay configuration
func (o *SubtitleOverlay) Config() Config {
	return o.cfg
}

// CueEnter shows a new cue
func (o *SubtitleOverlay) CueEnter(ev *model.CueEvent) *model.Label {
	label := cue.BuildLabel(ev, o.engine.Grid())
	o.tracker.Enter(ev, label)
	o.prepareCEA608(ev)

	o.detachPreview()
	o.surface.Show()
	o.regions.Add(label)
	o.surface.Refresh()
	return label
}

// CueUpdate replaces the label of an active cue. Updates without a matching
// active cue are dropped and nil is returned.
func (o *SubtitleOverlay) CueUpdate(ev *model.CueEvent) *model.Label {
	label := cue.BuildLabel(ev, o.engine.Grid())
	old, ok := o.tracker.Update(ev, label)
	o.prepareCEA608(ev)
	if !ok {
		return nil
	}

	o.regions.Replace(old, label)
	o.surface.Refresh()
	return label
}

// CueExit removes a cue. It returns false if the cue was not active.
func (o *SubtitleOverlay) CueExit(ev *model.CueEvent) bool {
	label, ok := o.tracker.Exit(ev)
	if ok {
		o.regions.Remove(label)
	}
	o.afterRemoval()
	o.surface.Refresh()
	return ok
}

// Seeked drops the cues that do not enclose the new playback time
func (o *SubtitleOverlay) Seeked(time float64) int {
	return o.clearInactive(time)
}

// TimeShifted drops the cues that do not enclose the new time-shift position
func (o *SubtitleOverlay) TimeShifted(time float64) int {
	return o.clearInactive(time)
}

func (o *SubtitleOverlay) clearInactive(time float64) int {
	removed := o.tracker.ClearInactive(time)
	for _, e := range removed {
		o.regions.Remove(e.Label)
	}
	if len(removed) > 0 {
		o.afterRemoval()
		o.surface.Refresh()
	}
	return len(removed)
}

// afterRemoval hides the overlay, or brings the preview back, and leaves
// CEA-608 mode once the last cue is gone
func (o *SubtitleOverlay) afterRemoval() {
	if o.tracker.HasCues() {
		return
	}
	if o.previewActive {
		o.attachPreview()
	} else {
		o.surface.Hide()
	}
	o.engine.Reset()
}

// Resized recomputes the grid layout for the current surface size, or defers
// it while CEA-608 mode is off
func (o *SubtitleOverlay) Resized() {
	o.engine.Resized(o.measurer, o.surface.Size())
	o.surface.Refresh()
}

// AudioChanged clears all subtitles
func (o *SubtitleOverlay) AudioChanged() {
	o.clearSubtitles()
}

// PlaybackFinished clears all subtitles
func (o *SubtitleOverlay) PlaybackFinished() {
	o.clearSubtitles()
}

// SubtitleDisabled clears all subtitles and leaves CEA-608 mode
func (o *SubtitleOverlay) SubtitleDisabled() {
	o.clearSubtitles()
	o.engine.Reset()
}

// SourceUnloaded clears all subtitles and leaves CEA-608 mode
func (o *SubtitleOverlay) SourceUnloaded() {
	o.clearSubtitles()
	o.engine.Reset()
}

// SubtitleEnabled leaves CEA-608 mode; the next positioned cue turns it on again
func (o *SubtitleOverlay) SubtitleEnabled() {
	o.engine.Reset()
	o.surface.Refresh()
}

func (o *SubtitleOverlay) clearSubtitles() {
	o.surface.Hide()
	o.regions.Clear()
	o.tracker.Clear()
	o.previewAttached = false
	o.surface.Refresh()
}

// prepareCEA608 turns CEA-608 mode on for the first positioned cue
func (o *SubtitleOverlay) prepareCEA608(ev *model.CueEvent) {
	if !ev.IsCEA608() {
		return
	}
	o.engine.Enable(o.measurer, o.surface.Size())
}

// SetFontSizeFactor clamps factor and recalculates the grid. The font layout
// is not recomputed; see UpdateCEA608FontSize.
func (o *SubtitleOverlay) SetFontSizeFactor(factor float64) {
	o.engine.Grid().SetFontSizeFactor(factor)
}

// RecalculateCEAGrid derives the grid dimensions from the current factor
func (o *SubtitleOverlay) RecalculateCEAGrid() {
	o.engine.Grid().Recalculate()
}

// SetFontSizePercent applies the font size preference. An unset preference
// resets the factor to 1. Non grid text keeps sizes above the grid maximum
// but never drops below the grid minimum.
func (o *SubtitleOverlay) SetFontSizePercent(value string, set bool) {
	factor := 1.0
	if set {
		factor = ResolveFontSizeFactor(value)
		if math.IsNaN(factor) {
			factor = 1
		}
	}
	o.textScale = math.Max(factor, o.engine.Grid().Config().MinFactor)
	o.SetFontSizeFactor(factor)
	o.UpdateCEA608FontSize()
}

// UpdateCEA608FontSize recomputes the grid font layout and moves every row
// container to the row its first label resolves to under the current grid
func (o *SubtitleOverlay) UpdateCEA608FontSize() {
	o.engine.Update(o.measurer, o.surface.Size())

	grid := o.engine.Grid()
	for _, c := range o.regions.Containers() {
		first := c.First()
		if first == nil {
			continue
		}
		c.SetClass(grid.ResolveRowClass(c.Class(), first.OriginalRow))
	}
	o.surface.Refresh()
}

// ResolveFontSizeFactor converts a percent preference such as "150" into a
// factor. Trailing non digits are ignored; a value without leading digits
// yields NaN.
func ResolveFontSizeFactor(value string) float64 {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) {
		c := value[end]
		if c >= '0' && c <= '9' || end == 0 && (c == '-' || c == '+') {
			end++
			continue
		}
		break
	}

	percent, err := strconv.Atoi(value[:end])
	if err != nil {
		return math.NaN()
	}
	return float64(percent) / 100
}

// FilterFontSizeOptions drops font size options the grid cannot display while
// CEA-608 mode is on. The empty key (no preference) is always kept.
func (o *SubtitleOverlay) FilterFontSizeOptions(keys []string) []string {
	if !o.engine.Enabled() {
		return keys
	}

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			out = append(out, key)
			continue
		}
		percent := ResolveFontSizeFactor(key) * 100
		if !math.IsNaN(percent) && percent <= float64(o.cfg.MaxCEA608FontSizePercent) {
			out = append(out, key)
		}
	}
	return out
}

// EnablePreviewSubtitleLabel shows the sample label used while subtitle
// settings are edited. It has no effect while cues are shown.
func (o *SubtitleOverlay) EnablePreviewSubtitleLabel() {
	if o.tracker.HasCues() {
		return
	}
	o.previewActive = true
	o.attachPreview()
	o.surface.Show()
	o.surface.Refresh()
}

// RemovePreviewSubtitleLabel removes the sample label
func (o *SubtitleOverlay) RemovePreviewSubtitleLabel() {
	if !o.previewActive {
		return
	}
	o.previewActive = false
	o.detachPreview()
	if !o.tracker.HasCues() {
		o.surface.Hide()
	}
	o.surface.Refresh()
}

// SetPreviewText changes the text of the sample label
func (o *SubtitleOverlay) SetPreviewText(text string) {
	attached := o.previewAttached
	o.detachPreview()
	o.preview = cue.BuildPreviewLabel(text)
	if attached {
		o.attachPreview()
	}
	o.surface.Refresh()
}

// PreviewActive reports whether the sample label is enabled
func (o *SubtitleOverlay) PreviewActive() bool {
	return o.previewActive
}

func (o *SubtitleOverlay) attachPreview() {
	if o.previewAttached {
		return
	}
	o.regions.Add(o.preview)
	o.previewAttached = true
}

func (o *SubtitleOverlay) detachPreview() {
	if !o.previewAttached {
		return
	}
	o.regions.Remove(o.preview)
	o.previewAttached = false
}

// SetControlBarVisible raises bottom anchored regions while the control bar is shown
func (o *SubtitleOverlay) SetControlBarVisible(visible bool) {
	o.controlBarVisible = visible
	o.surface.Refresh()
}

// SetForceIntoView toggles pinning of labels that cross an overlay edge
func (o *SubtitleOverlay) SetForceIntoView(force bool) {
	o.cfg.ForceIntoView = force
	o.surface.Refresh()
}

// HasCues reports whether any cue is active
func (o *SubtitleOverlay) HasCues() bool {
	return o.tracker.HasCues()
}

// CueCount returns the number of active cues
func (o *SubtitleOverlay) CueCount() int {
	return o.tracker.Count()
}

// CEA608Enabled reports whether the overlay is in CEA-608 mode
func (o *SubtitleOverlay) CEA608Enabled() bool {
	return o.engine.Enabled()
}

// GridState returns the current grid dimensions
func (o *SubtitleOverlay) GridState() cea608.State {
	return o.engine.Grid().State()
}

// FontLayout returns the current CEA-608 font layout
func (o *SubtitleOverlay) FontLayout() cea608.FontLayout {
	return o.engine.Layout()
}

// Containers returns the live region containers in creation order
func (o *SubtitleOverlay) Containers() []*region.Container {
	return o.regions.Containers()
}

// HandleEvent dispatches a player event to the matching method
func (o *SubtitleOverlay) HandleEvent(ev model.Event) {
	switch ev.Kind {
	case model.EventCueEnter:
		if ev.Cue != nil {
			o.CueEnter(ev.Cue)
		}
	case model.EventCueUpdate:
		if ev.Cue != nil {
			o.CueUpdate(ev.Cue)
		}
	case model.EventCueExit:
		if ev.Cue != nil {
			o.CueExit(ev.Cue)
		}
	case model.EventSeeked:
		o.Seeked(ev.Time)
	case model.EventTimeShifted:
		o.TimeShifted(ev.Time)
	case model.EventResized:
		if r, ok := o.surface.(Resizer); ok && !ev.Size.IsEmpty() {
			r.Resize(ev.Size)
		}
		o.Resized()
	case model.EventAudioChanged:
		o.AudioChanged()
	case model.EventPlaybackFinished:
		o.PlaybackFinished()
	case model.EventSubtitleDisabled:
		o.SubtitleDisabled()
	case model.EventSourceUnloaded:
		o.SourceUnloaded()
	case model.EventSubtitleEnabled:
		o.SubtitleEnabled()
	case model.EventFontSizeChanged:
		o.SetFontSizePercent(ev.FontSize, ev.FontSize != "")
	case model.EventControlBarShown:
		o.SetControlBarVisible(true)
	case model.EventControlBarHidden:
		o.SetControlBarVisible(false)
	default:
		log.Printf("Warning: unhandled player event %q", ev.Kind)
	}
}
