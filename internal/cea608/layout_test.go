package cea608

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/subtitle-overlay/internal/model"
)

func TestFaceMeasurer_Basic(t *testing.T) {
	m := NewBasicMeasurer()

	glyph := m.MeasureText("X", 13)
	assert.InDelta(t, 7, glyph.Width, 1e-4)
	assert.InDelta(t, 13, glyph.Height, 1e-4)

	scaled := m.MeasureText("X", 200)
	assert.InDelta(t, 7*200.0/13, scaled.Width, 1e-3)
	assert.InDelta(t, 200, scaled.Height, 1e-3)

	lines := m.MeasureText("ab\nabcd", 13)
	assert.InDelta(t, 28, lines.Width, 1e-4)
	assert.InDelta(t, 26, lines.Height, 1e-4)
}

func TestGrid_ComputeLayoutHeightBound(t *testing.T) {
	g := NewGrid(DefaultConfig())
	glyph := NewBasicMeasurer().MeasureText(DefaultMeasureGlyph, DefaultMeasureFontSize)

	layout := g.ComputeLayout(glyph, model.Size{Width: 650, Height: 300})
	require.False(t, layout.IsZero())

	assert.InDelta(t, 20, layout.FontSize, 1e-4)
	assert.InDelta(t, 20, layout.LineHeight, 1e-4)
	assert.InDelta(t, 20, layout.RowHeight, 1e-4)
	assert.InDelta(t, 20-140.0/13, layout.LetterSpacing, 1e-4)
	assert.InDelta(t, 7.0/13, layout.CharRatio, 1e-6)
}

func TestGrid_ComputeLayoutWidthBound(t *testing.T) {
	g := NewGrid(DefaultConfig())
	glyph := NewBasicMeasurer().MeasureText(DefaultMeasureGlyph, DefaultMeasureFontSize)

	// 330 - 10 = 320 usable pixels for 32 columns
	layout := g.ComputeLayout(glyph, model.Size{Width: 330, Height: 600})
	require.False(t, layout.IsZero())

	assert.InDelta(t, 10*13.0/7, layout.FontSize, 1e-3)
	assert.Zero(t, layout.LetterSpacing)
}

func TestGrid_ComputeLayoutFillsGrid(t *testing.T) {
	glyph := NewBasicMeasurer().MeasureText(DefaultMeasureGlyph, DefaultMeasureFontSize)
	overlay := model.Size{Width: 1290, Height: 720}

	for _, factor := range []float64{0.5, 1, 1.5, 2} {
		g := NewGrid(DefaultConfig())
		g.SetFontSizeFactor(factor)
		layout := g.ComputeLayout(glyph, overlay)

		cell := layout.FontSize*layout.CharRatio + layout.LetterSpacing
		assert.LessOrEqual(t, cell*float32(g.Columns()), overlay.Width-DefaultWidthSafetyMargin+1e-2, "factor %v", factor)
		assert.LessOrEqual(t, layout.RowHeight*float32(g.Rows()), overlay.Height+1e-2, "factor %v", factor)
	}
}

func TestGrid_ComputeLayoutEmpty(t *testing.T) {
	g := NewGrid(DefaultConfig())
	glyph := model.Size{Width: 100, Height: 200}

	assert.True(t, g.ComputeLayout(glyph, model.Size{}).IsZero())
	assert.True(t, g.ComputeLayout(glyph, model.Size{Width: 10, Height: 300}).IsZero())
	assert.True(t, g.ComputeLayout(model.Size{}, model.Size{Width: 640, Height: 360}).IsZero())
}

func TestGrid_LabelStyle(t *testing.T) {
	layout := FontLayout{FontSize: 20, LineHeight: 20, LetterSpacing: 3, RowHeight: 20, CharRatio: 0.5}
	pos := model.Position{Row: 4, Column: 8}

	g := NewGrid(DefaultConfig())
	style := g.LabelStyle(pos, layout)
	assert.Equal(t, float32(3), style.LetterSpacing)
	assert.False(t, style.NoWrap)
	assert.InDelta(t, 25, style.LeftPercent, 1e-9)

	g.SetFontSizeFactor(1.5)
	style = g.LabelStyle(pos, layout)
	assert.Zero(t, style.LetterSpacing)
	assert.True(t, style.NoWrap)
	assert.Zero(t, style.LeftPercent)

	assert.Equal(t, "line-height: 20px;", RegionStyle(layout))
}

func TestTextColumns(t *testing.T) {
	assert.Equal(t, 0, TextColumns(""))
	assert.Equal(t, 5, TextColumns("hello"))
	assert.Equal(t, 6, TextColumns("ab\nabcdef\nabc"))
	assert.Equal(t, 4, TextColumns("字幕"))
}

func TestTextSize(t *testing.T) {
	layout := FontLayout{FontSize: 20, LineHeight: 20, LetterSpacing: 2, CharRatio: 0.5}
	style := LabelStyle{FontSize: 20, LineHeight: 20, LetterSpacing: 2}

	size := TextSize("abcd\nab", style, layout)
	assert.Equal(t, float32(48), size.Width)
	assert.Equal(t, float32(40), size.Height)
	assert.Equal(t, model.Size{}, TextSize("", style, layout))
}
