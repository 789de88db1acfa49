package cea608

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/subtitle-overlay/internal/model"
)

type countingMeasurer struct {
	calls int
}

func (m *countingMeasurer) MeasureText(text string, size float32) model.Size {
	m.calls++
	return model.Size{Width: size / 2, Height: size}
}

func TestEngine_EnableComputesOnce(t *testing.T) {
	m := &countingMeasurer{}
	e := NewEngine(DefaultConfig())
	size := model.Size{Width: 650, Height: 300}

	assert.True(t, e.Enable(m, size))
	assert.Equal(t, 1, m.calls)
	assert.False(t, e.Layout().IsZero())
	assert.False(t, e.CalculationRequired())

	assert.False(t, e.Enable(m, size), "second enable is a no-op")
	e.Reset()
	assert.False(t, e.Enabled())

	// layout is still valid, re-enabling must not measure again
	assert.True(t, e.Enable(m, size))
	assert.Equal(t, 1, m.calls)
}

func TestEngine_ResizeWhileDisabled(t *testing.T) {
	m := &countingMeasurer{}
	e := NewEngine(DefaultConfig())

	e.Enable(m, model.Size{Width: 650, Height: 300})
	e.Reset()

	e.Resized(m, model.Size{Width: 1290, Height: 600})
	assert.Equal(t, 1, m.calls, "resize while disabled only marks the calculation")
	assert.True(t, e.CalculationRequired())

	e.Enable(m, model.Size{Width: 1290, Height: 600})
	assert.Equal(t, 2, m.calls)
	assert.InDelta(t, 40, e.Layout().FontSize, 1e-4)
}

func TestEngine_ResizeWhileEnabled(t *testing.T) {
	m := &countingMeasurer{}
	e := NewEngine(DefaultConfig())

	e.Enable(m, model.Size{Width: 650, Height: 300})
	e.Resized(m, model.Size{Width: 1290, Height: 600})
	assert.Equal(t, 2, m.calls)
	assert.InDelta(t, 40, e.Layout().FontSize, 1e-4)
}

func TestEngine_EmptyOverlayKeepsLayout(t *testing.T) {
	m := &countingMeasurer{}
	e := NewEngine(DefaultConfig())

	e.Enable(m, model.Size{Width: 650, Height: 300})
	before := e.Layout()

	e.Update(m, model.Size{})
	assert.Equal(t, before, e.Layout())
	assert.True(t, e.CalculationRequired())
}

func TestEngine_SetFontSizeFactor(t *testing.T) {
	m := &countingMeasurer{}
	e := NewEngine(DefaultConfig())
	size := model.Size{Width: 650, Height: 300}

	e.SetFontSizeFactor(2, m, size)
	assert.Equal(t, 7, e.Grid().Rows())
	assert.InDelta(t, 300.0/7, e.Layout().FontSize, 1e-3)
}

func TestEngine_LogsOnlyLayoutChanges(t *testing.T) {
	var buf bytes.Buffer
	out := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(out)

	e := NewEngine(DefaultConfig())
	m := &countingMeasurer{}
	size := model.Size{Width: 650, Height: 300}

	for i := 0; i < 3; i++ {
		e.Enable(m, size)
		e.Reset()
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "CEA-608 font layout"))

	e.Enable(m, size)
	e.Update(m, size)
	assert.Equal(t, 1, strings.Count(buf.String(), "CEA-608 font layout"), "same layout")

	e.Resized(m, model.Size{Width: 650, Height: 150})
	assert.Equal(t, 2, strings.Count(buf.String(), "CEA-608 font layout"))
}
