package cea608

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// GlyphMeasurer measures the natural pixel size of rendered text
type GlyphMeasurer interface {
	MeasureText(text string, size float32) model.Size
}

// FaceMeasurer measures text with a font.Face, scaling linearly from the face's
// nominal line height to the requested size
type FaceMeasurer struct {
	face    font.Face
	nominal float32
}

// NewFaceMeasurer creates a measurer for face
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	nominal := float32(face.Metrics().Height) / 64
	if nominal <= 0 {
		nominal = 1
	}
	return &FaceMeasurer{face: face, nominal: nominal}
}

// NewBasicMeasurer creates a measurer for the fixed 7x13 face. It needs no
// font files or display and is used headless.
func NewBasicMeasurer() *FaceMeasurer {
	return NewFaceMeasurer(basicfont.Face7x13)
}

// MeasureText returns the size of the widest line times the number of lines
func (m *FaceMeasurer) MeasureText(text string, size float32) model.Size {
	scale := size / m.nominal
	lines := strings.Split(text, "\n")

	var widest float32
	for _, line := range lines {
		w := float32(font.MeasureString(m.face, line)) / 64
		if w > widest {
			widest = w
		}
	}

	return model.Size{
		Width:  widest * scale,
		Height: m.nominal * scale * float32(len(lines)),
	}
}
