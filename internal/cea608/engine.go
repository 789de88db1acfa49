package cea608

import (
	"log"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Engine tracks whether the overlay is in CEA-608 mode and holds the font
// layout computed for the current grid and overlay size
type Engine struct {
	grid *Grid

	enabled bool
	// calculationRequired is set when the overlay size changed while disabled
	calculationRequired bool
	layout              FontLayout
}

// NewEngine creates a disabled engine whose first enable computes the layout
func NewEngine(cfg Config) *Engine {
	return &Engine{
		grid:                NewGrid(cfg),
		calculationRequired: true,
	}
}

// Grid returns the character grid
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Enabled reports whether CEA-608 mode is active
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Enable switches to CEA-608 mode. It returns true if the mode was off before.
// The layout is only recomputed when a calculation was marked as required.
func (e *Engine) Enable(measurer GlyphMeasurer, overlay model.Size) bool {
	if e.enabled {
		return false
	}
	e.enabled = true

	if e.calculationRequired {
		e.Update(measurer, overlay)
	}
	return true
}

// Reset leaves CEA-608 mode. The computed layout is kept for the next enable.
func (e *Engine) Reset() {
	e.enabled = false
}

// MarkCalculationRequired defers the layout computation to the next enable
func (e *Engine) MarkCalculationRequired() {
	e.calculationRequired = true
}

// CalculationRequired reports whether the next enable recomputes the layout
func (e *Engine) CalculationRequired() bool {
	return e.calculationRequired
}

// Resized handles an overlay size change
func (e *Engine) Resized(measurer GlyphMeasurer, overlay model.Size) {
	if e.enabled {
		e.Update(measurer, overlay)
		return
	}
	e.MarkCalculationRequired()
}

// Update measures the reference glyph and recomputes the font layout. An empty
// overlay keeps the previous layout and leaves the calculation pending. Only a
// changed layout is logged.
func (e *Engine) Update(measurer GlyphMeasurer, overlay model.Size) FontLayout {
	cfg := e.grid.Config()
	glyph := measurer.MeasureText(cfg.MeasureGlyph, cfg.MeasureFontSize)

	layout := e.grid.ComputeLayout(glyph, overlay)
	if layout.IsZero() {
		log.Printf("Warning: cannot compute CEA-608 font size for overlay %s", overlay)
		e.calculationRequired = true
		return e.layout
	}

	if layout != e.layout {
		log.Printf("CEA-608 font layout: %.1fpx, %d rows x %d columns", layout.FontSize, e.grid.Rows(), e.grid.Columns())
	}
	e.layout = layout
	e.calculationRequired = false
	return layout
}

// Layout returns the last computed font layout
func (e *Engine) Layout() FontLayout {
	return e.layout
}

// SetFontSizeFactor changes the factor and recomputes the layout
func (e *Engine) SetFontSizeFactor(factor float64, measurer GlyphMeasurer, overlay model.Size) {
	e.grid.SetFontSizeFactor(factor)
	e.Update(measurer, overlay)
}
