package cea608

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// LabelStyle is the text style of a grid positioned label
type LabelStyle struct {
	FontSize      float32
	LineHeight    float32
	LetterSpacing float32
	// NoWrap disables line wrapping (enlarged text)
	NoWrap bool
	// LeftPercent is the horizontal position in percent of the container width
	LeftPercent float64
}

// LabelStyle returns the style of a label at the given grid position. Enlarged
// text drops the strict grid: no letter spacing, no wrapping and a fixed left edge.
func (g *Grid) LabelStyle(pos model.Position, layout FontLayout) LabelStyle {
	style := LabelStyle{
		FontSize:      layout.FontSize,
		LineHeight:    layout.LineHeight,
		LetterSpacing: layout.LetterSpacing,
		LeftPercent:   float64(pos.Column) * g.columnOffset,
	}
	if g.IsEnlarged() {
		style.LetterSpacing = 0
		style.NoWrap = true
		style.LeftPercent = 0
	}
	return style
}

// RegionStyle returns the style applied to the region container of a grid label
func RegionStyle(layout FontLayout) string {
	return fmt.Sprintf("line-height: %gpx;", layout.FontSize)
}

// TextColumns returns the number of grid cells taken by the widest line of
// text. Wide east asian glyphs take two cells.
func TextColumns(text string) int {
	columns := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > columns {
			columns = w
		}
	}
	return columns
}

// TextSize returns the pixel extent of text rendered with style
func TextSize(text string, style LabelStyle, layout FontLayout) model.Size {
	if text == "" {
		return model.Size{}
	}
	cell := style.FontSize*layout.CharRatio + style.LetterSpacing
	lines := strings.Count(text, "\n") + 1
	return model.Size{
		Width:  float32(TextColumns(text)) * cell,
		Height: float32(lines) * style.LineHeight,
	}
}
