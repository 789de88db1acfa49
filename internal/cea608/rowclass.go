package cea608

import (
	"regexp"
	"strconv"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// RowClassPrefix prefixes the position class of a row region container
const RowClassPrefix = "subtitle-position-" + model.CEA608RowPrefix

var rowClassPattern = regexp.MustCompile(`subtitle-position-cea608-row-(\d+)`)

// RowClass returns the position class for a grid row
func RowClass(row int) string {
	return RowClassPrefix + strconv.Itoa(row)
}

// ParseRowClass extracts the row from a position class
func ParseRowClass(class string) (int, bool) {
	match := rowClassPattern.FindStringSubmatch(class)
	if match == nil {
		return 0, false
	}
	row, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return row, true
}

// ResolveRowClass re-resolves the position class of a row region container.
// The original row of its first label is the source of truth; the row in the
// current class is only used when the label does not remember one. Classes that
// are not row classes are returned unchanged.
func (g *Grid) ResolveRowClass(class string, originalRow *int) string {
	row, ok := ParseRowClass(class)
	if !ok {
		return class
	}
	if originalRow != nil {
		row = *originalRow
	}
	return rowClassPattern.ReplaceAllString(class, RowClass(g.ResolveRowNumber(row)))
}
