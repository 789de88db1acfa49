package cea608

import (
	"math"
)

// State is a snapshot of the grid dimensions
type State struct {
	FontSizeFactor float64
	NumRows        int
	NumColumns     int
	// ColumnOffset is the width of one column in percent of the overlay width
	ColumnOffset float64
}

// Grid is the character grid whose dimensions follow the font size factor
type Grid struct {
	cfg          Config
	factor       float64
	rows         int
	columns      int
	columnOffset float64
}

// NewGrid creates a grid at factor 1
func NewGrid(cfg Config) *Grid {
	g := &Grid{
		cfg:    cfg.withDefaults(),
		factor: 1,
	}
	g.Recalculate()
	return g
}

// Config returns the format constants of the grid
func (g *Grid) Config() Config {
	return g.cfg
}

// SetFontSizeFactor clamps factor into the allowed range and recalculates the grid.
// NaN is treated as the default factor 1.
func (g *Grid) SetFontSizeFactor(factor float64) {
	if math.IsNaN(factor) {
		factor = 1
	}
	g.factor = math.Max(g.cfg.MinFactor, math.Min(g.cfg.MaxFactor, factor))
	g.Recalculate()
}

// FontSizeFactor returns the clamped factor
func (g *Grid) FontSizeFactor() float64 {
	return g.factor
}

// Recalculate derives rows, columns and the column offset from the factor.
// Rows never grow beyond the base row count: text below factor 1 only gets
// narrower, not shorter.
func (g *Grid) Recalculate() {
	g.rows = int(math.Floor(float64(g.cfg.BaseRows) / math.Max(g.factor, 1)))
	g.columns = int(math.Floor(float64(g.cfg.BaseColumns) / g.factor))
	if g.rows < 1 {
		g.rows = 1
	}
	if g.columns < 1 {
		g.columns = 1
	}
	g.columnOffset = 100 / float64(g.columns)
}

// Rows returns the number of grid rows
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of grid columns
func (g *Grid) Columns() int {
	return g.columns
}

// ColumnOffset returns the width of one column in percent
func (g *Grid) ColumnOffset() float64 {
	return g.columnOffset
}

// IsEnlarged reports whether text is scaled above its default size
func (g *Grid) IsEnlarged() bool {
	return g.factor > 1
}

// RowDelta is the number of rows lost compared to the base grid
func (g *Grid) RowDelta() int {
	return g.cfg.BaseRows - g.rows
}

// ResolveRowNumber moves a row that would overflow an enlarged grid back into
// the visible area. Callers must always pass the original row, never an
// already resolved one.
func (g *Grid) ResolveRowNumber(row int) int {
	if g.IsEnlarged() && row > g.rows {
		return row - g.RowDelta()
	}
	return row
}

// State returns a snapshot of the grid
func (g *Grid) State() State {
	return State{
		FontSizeFactor: g.factor,
		NumRows:        g.rows,
		NumColumns:     g.columns,
		ColumnOffset:   g.columnOffset,
	}
}
