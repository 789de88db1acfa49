package model

// EventKind identifies a player lifecycle event consumed by the overlay
type EventKind string

const (
	// EventCueEnter means a cue became active
	EventCueEnter EventKind = "cue_enter"

	// EventCueUpdate means the content of an active cue changed
	EventCueUpdate EventKind = "cue_update"

	// EventCueExit means a cue stopped being active
	EventCueExit EventKind = "cue_exit"

	// EventSeeked means playback jumped to a new position
	EventSeeked EventKind = "seeked"

	// EventTimeShifted means a live stream moved its time-shift position
	EventTimeShifted EventKind = "time_shifted"

	// EventResized means the player (and therefore the overlay) changed size
	EventResized EventKind = "resized"

	// EventAudioChanged means the active audio track was switched
	EventAudioChanged EventKind = "audio_changed"

	// EventSubtitleEnabled means a subtitle track was enabled
	EventSubtitleEnabled EventKind = "subtitle_enabled"

	// EventSubtitleDisabled means the subtitle track was disabled
	EventSubtitleDisabled EventKind = "subtitle_disabled"

	// EventPlaybackFinished means playback reached the end of the source
	EventPlaybackFinished EventKind = "playback_finished"

	// EventSourceUnloaded means the source was unloaded from the player
	EventSourceUnloaded EventKind = "source_unloaded"

	// EventFontSizeChanged means the user changed the subtitle font size preference
	EventFontSizeChanged EventKind = "font_size_changed"

	// EventControlBarShown means the player control bar became visible
	EventControlBarShown EventKind = "controlbar_shown"

	// EventControlBarHidden means the player control bar was hidden
	EventControlBarHidden EventKind = "controlbar_hidden"
)

// String returns the string representation of EventKind
func (k EventKind) String() string {
	return string(k)
}

// IsCueEvent returns true for events that carry a cue payload
func (k EventKind) IsCueEvent() bool {
	return k == EventCueEnter || k == EventCueUpdate || k == EventCueExit
}

// ClearsSubtitles returns true for events after which no cue may stay on screen
func (k EventKind) ClearsSubtitles() bool {
	return k == EventAudioChanged || k == EventSubtitleDisabled ||
		k == EventPlaybackFinished || k == EventSourceUnloaded
}

// PrunesInactive returns true for events after which cues that no longer
// enclose the playback time must be dropped
func (k EventKind) PrunesInactive() bool {
	return k == EventSeeked || k == EventTimeShifted
}

// ResetsCEA608 returns true for events that switch the overlay out of CEA-608 mode
func (k EventKind) ResetsCEA608() bool {
	return k == EventSourceUnloaded || k == EventSubtitleEnabled || k == EventSubtitleDisabled
}

// Event is a single player event. Only the fields relevant to Kind are set:
// Cue for cue events, Time for seek/time-shift, Size for resize and FontSize
// (a percent string, empty when the preference is unset) for font size changes.
type Event struct {
	Kind     EventKind
	Cue      *CueEvent
	Time     float64
	Size     Size
	FontSize string
}
