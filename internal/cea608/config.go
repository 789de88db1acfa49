package cea608

// Grid dimensions of the CEA-608 format
const (
	DefaultNumRows    = 15
	DefaultNumColumns = 32
)

// Font size factor bounds, see 47 CFR 79.103(c)(4)
const (
	MinFontSizeFactor = 0.5
	MaxFontSizeFactor = 2.0
)

// Measurement constants
const (
	// DefaultMeasureFontSize is large so that integer glyph sizes still give an
	// accurate aspect ratio
	DefaultMeasureFontSize float32 = 200
	// DefaultWidthSafetyMargin is subtracted from the overlay width to avoid
	// line breaks caused by pixel rounding at the right border
	DefaultWidthSafetyMargin float32 = 10
	DefaultMeasureGlyph              = "X"
)

// Config holds the format constants of one grid engine. Each overlay owns its
// own copy so engines never share mutated state.
type Config struct {
	BaseRows          int
	BaseColumns       int
	MinFactor         float64
	MaxFactor         float64
	MeasureFontSize   float32
	WidthSafetyMargin float32
	MeasureGlyph      string
}

// DefaultConfig returns the standard CEA-608 configuration
func DefaultConfig() Config {
	return Config{
		BaseRows:          DefaultNumRows,
		BaseColumns:       DefaultNumColumns,
		MinFactor:         MinFontSizeFactor,
		MaxFactor:         MaxFontSizeFactor,
		MeasureFontSize:   DefaultMeasureFontSize,
		WidthSafetyMargin: DefaultWidthSafetyMargin,
		MeasureGlyph:      DefaultMeasureGlyph,
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseRows <= 0 {
		c.BaseRows = d.BaseRows
	}
	if c.BaseColumns <= 0 {
		c.BaseColumns = d.BaseColumns
	}
	if c.MinFactor <= 0 {
		c.MinFactor = d.MinFactor
	}
	if c.MaxFactor < c.MinFactor {
		c.MaxFactor = d.MaxFactor
	}
	if c.MeasureFontSize <= 0 {
		c.MeasureFontSize = d.MeasureFontSize
	}
	if c.WidthSafetyMargin < 0 {
		c.WidthSafetyMargin = d.WidthSafetyMargin
	}
	if c.MeasureGlyph == "" {
		c.MeasureGlyph = d.MeasureGlyph
	}
	return c
}
