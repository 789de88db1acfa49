package overlay

import (
	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/region"
)

// Defaults
const (
	DefaultTextSize         float32 = 22
	DefaultControlBarMargin float32 = 48
	DefaultPreviewText              = "Example subtitle"
	// DefaultMaxCEA608FontSizePercent is the largest font size option offered in CEA-608 mode
	DefaultMaxCEA608FontSizePercent = 200
	// DefaultImageLines is the height of an image label in text lines
	DefaultImageLines = 3
)

// Config configures one overlay instance
type Config struct {
	CEA608 cea608.Config

	// TextSize is the font size of non grid labels at 100%
	TextSize      float32
	VTTLineHeight float32
	// ControlBarMargin raises bottom anchored regions while the control bar is shown
	ControlBarMargin float32
	// ForceIntoView pins labels that cross an overlay edge to that edge
	ForceIntoView bool
	PreviewText   string

	MaxCEA608FontSizePercent int
	ImageLines               int
}

// DefaultConfig returns the default overlay configuration
func DefaultConfig() Config {
	return Config{
		CEA608:                   cea608.DefaultConfig(),
		TextSize:                 DefaultTextSize,
		VTTLineHeight:            region.DefaultVTTLineHeight,
		ControlBarMargin:         DefaultControlBarMargin,
		PreviewText:              DefaultPreviewText,
		MaxCEA608FontSizePercent: DefaultMaxCEA608FontSizePercent,
		ImageLines:               DefaultImageLines,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CEA608.BaseRows == 0 {
		c.CEA608 = d.CEA608
	}
	if c.TextSize <= 0 {
		c.TextSize = d.TextSize
	}
	if c.VTTLineHeight <= 0 {
		c.VTTLineHeight = d.VTTLineHeight
	}
	if c.ControlBarMargin < 0 {
		c.ControlBarMargin = 0
	}
	if c.PreviewText == "" {
		c.PreviewText = d.PreviewText
	}
	if c.MaxCEA608FontSizePercent <= 0 {
		c.MaxCEA608FontSizePercent = d.MaxCEA608FontSizePercent
	}
	if c.ImageLines <= 0 {
		c.ImageLines = d.ImageLines
	}
	return c
}
