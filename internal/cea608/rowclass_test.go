package cea608

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestParseRowClass(t *testing.T) {
	row, ok := ParseRowClass("subtitle-position-cea608-row-12")
	assert.True(t, ok)
	assert.Equal(t, 12, row)

	_, ok = ParseRowClass("subtitle-position-default")
	assert.False(t, ok)

	assert.Equal(t, "subtitle-position-cea608-row-3", RowClass(3))
}

func TestGrid_ResolveRowClass(t *testing.T) {
	g := NewGrid(DefaultConfig())
	g.SetFontSizeFactor(2)

	// the original row wins over the already remapped class
	assert.Equal(t, RowClass(6), g.ResolveRowClass(RowClass(6), intPtr(14)))
	// no remembered row: fall back to the class
	assert.Equal(t, RowClass(6), g.ResolveRowClass(RowClass(14), nil))
	assert.Equal(t, "subtitle-position-default", g.ResolveRowClass("subtitle-position-default", intPtr(14)))

	g.SetFontSizeFactor(1)
	assert.Equal(t, RowClass(14), g.ResolveRowClass(RowClass(6), intPtr(14)))
}
