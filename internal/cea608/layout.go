package cea608

import (
	"math"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// FontLayout is the font geometry that makes the grid fill the overlay
type FontLayout struct {
	FontSize      float32
	LineHeight    float32
	LetterSpacing float32
	// RowHeight is the height of one grid row; containers sit at row × RowHeight
	RowHeight float32
	// CharRatio is width/height of one glyph at the current factor
	CharRatio float32
}

// IsZero reports whether the layout was never computed
func (l FontLayout) IsZero() bool {
	return l.FontSize <= 0
}

// ComputeLayout derives the font size and letter spacing for the grid. glyph is
// the natural size of one character measured at Config.MeasureFontSize, overlay
// the current pixel size of the overlay. An empty overlay or glyph yields a zero
// layout.
func (g *Grid) ComputeLayout(glyph model.Size, overlay model.Size) FontLayout {
	charWidth := float64(glyph.Width) * g.factor
	charHeight := float64(glyph.Height) * g.factor
	if charWidth <= 0 || charHeight <= 0 {
		return FontLayout{}
	}
	ratio := charWidth / charHeight

	width := float64(overlay.Width - g.cfg.WidthSafetyMargin)
	height := float64(overlay.Height)
	if width <= 0 || height <= 0 {
		return FontLayout{}
	}

	rows := float64(g.rows)
	columns := float64(g.columns)

	gridRatio := (charWidth * columns) / (charHeight * rows)
	overlayRatio := width / height

	var fontSize, letterSpacing float64
	if overlayRatio > gridRatio {
		// Height bound: spread the spare width over the columns
		fontSize = height / rows
		slotWidth := width / columns
		letterSpacing = math.Max(slotWidth-fontSize*ratio, 0)
	} else {
		// Width bound: extra spacing would push text into the next row
		fontSize = width / columns / ratio
		letterSpacing = 0
	}

	return FontLayout{
		FontSize:      float32(fontSize),
		LineHeight:    float32(fontSize),
		LetterSpacing: float32(letterSpacing),
		RowHeight:     float32(fontSize),
		CharRatio:     float32(ratio),
	}
}
