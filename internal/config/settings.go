package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/subtitle-overlay/internal/overlay"
	"github.com/ytget/subtitle-overlay/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyTimelineDir      = "timeline_directory"
	KeyFontSize         = "subtitle_font_size"
	KeyLanguage         = "app_language"
	KeyForceIntoView    = "force_subtitles_into_view"
	KeyPreviewText      = "subtitle_preview_text"
	KeyPlaybackRate     = "playback_rate"
	KeyAutoOpenTimeline = "auto_open_latest_timeline"
)

// Default values
const (
	DefaultFontSize         = ""
	DefaultLanguage         = "system"
	DefaultForceIntoView    = false
	DefaultPreviewText      = overlay.DefaultPreviewText
	DefaultPlaybackRate     = 1.0
	DefaultAutoOpenTimeline = true
)

// Playback rate bounds
const (
	MinPlaybackRate = 0.25
	MaxPlaybackRate = 4.0
)

// FontSizeOptions lists the subtitle size choices offered to the user, in
// percent of the default size. The empty option means no preference.
var FontSizeOptions = []string{"", "50", "75", "100", "150", "200", "300", "400"}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTimelineDirectory returns the directory timelines are opened from
func (s *Settings) GetTimelineDirectory() string {
	dir := s.app.Preferences().String(KeyTimelineDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeTimelineDir()
		if err != nil {
			defaultDir = "/tmp/subtitles"
		}
		s.SetTimelineDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetTimelineDirectory sets the timeline directory
func (s *Settings) SetTimelineDirectory(dir string) {
	s.app.Preferences().SetString(KeyTimelineDir, dir)
}

// GetFontSize returns the stored subtitle font size option. The empty string
// means the user never picked one.
func (s *Settings) GetFontSize() string {
	return s.app.Preferences().StringWithFallback(KeyFontSize, DefaultFontSize)
}

// SetFontSize stores a subtitle font size option. Unknown options reset the
// preference.
func (s *Settings) SetFontSize(size string) {
	if !IsFontSizeOption(size) {
		size = DefaultFontSize
	}
	s.app.Preferences().SetString(KeyFontSize, size)
}

// IsFontSizeOption reports whether size is one of FontSizeOptions
func IsFontSizeOption(size string) bool {
	for _, o := range FontSizeOptions {
		if o == size {
			return true
		}
	}
	return false
}

// GetFontSizeOptions returns the available font size options
func (s *Settings) GetFontSizeOptions() []string {
	out := make([]string, len(FontSizeOptions))
	copy(out, FontSizeOptions)
	return out
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetForceIntoView returns whether subtitles are kept inside the video area
func (s *Settings) GetForceIntoView() bool {
	return s.app.Preferences().BoolWithFallback(KeyForceIntoView, DefaultForceIntoView)
}

// SetForceIntoView sets whether subtitles are kept inside the video area
func (s *Settings) SetForceIntoView(force bool) {
	s.app.Preferences().SetBool(KeyForceIntoView, force)
}

// GetPreviewText returns the text of the sample subtitle
func (s *Settings) GetPreviewText() string {
	text := s.app.Preferences().String(KeyPreviewText)
	if text == "" {
		return DefaultPreviewText
	}
	return text
}

// SetPreviewText sets the text of the sample subtitle
func (s *Settings) SetPreviewText(text string) {
	s.app.Preferences().SetString(KeyPreviewText, text)
}

// GetPlaybackRate returns the replay speed multiplier
func (s *Settings) GetPlaybackRate() float64 {
	rate := s.app.Preferences().FloatWithFallback(KeyPlaybackRate, DefaultPlaybackRate)
	if rate <= 0 {
		return DefaultPlaybackRate
	}
	return rate
}

// SetPlaybackRate sets the replay speed multiplier
func (s *Settings) SetPlaybackRate(rate float64) {
	if rate < MinPlaybackRate {
		rate = MinPlaybackRate
	}
	if rate > MaxPlaybackRate {
		rate = MaxPlaybackRate
	}
	s.app.Preferences().SetFloat(KeyPlaybackRate, rate)
}

// GetAutoOpenLatestTimeline returns whether the newest timeline is opened on start
func (s *Settings) GetAutoOpenLatestTimeline() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoOpenTimeline, DefaultAutoOpenTimeline)
}

// SetAutoOpenLatestTimeline sets whether the newest timeline is opened on start
func (s *Settings) SetAutoOpenLatestTimeline(open bool) {
	s.app.Preferences().SetBool(KeyAutoOpenTimeline, open)
}

// OverlayConfig returns the overlay configuration built from the stored preferences
func (s *Settings) OverlayConfig() overlay.Config {
	cfg := overlay.DefaultConfig()
	cfg.ForceIntoView = s.GetForceIntoView()
	cfg.PreviewText = s.GetPreviewText()
	return cfg
}
