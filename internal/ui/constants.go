package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconLanguage = "🌐"
)

// Text fragments
const (
	PositionLabelFormat = "%s / %s"
	FontSizeLabelFormat = "%s%%"
)

// Layout sizing
const (
	DefaultVideoWidth  float32 = 650
	DefaultVideoHeight float32 = 366

	ControlBarHeight float32 = 48
	SeekSliderStep           = 0.1

	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 360
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Delays
const (
	AutoStartDelay = 500 * time.Millisecond
)
