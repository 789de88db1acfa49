package cue

import (
	"strconv"
	"strings"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Identity returns the composite identity of a cue event: start time and text,
// plus row and column for grid positioned cues. The end time is not part of
// the identity because it may still be unknown on enter.
//
// The identity is computed from the event exactly as received; row remapping
// only ever affects the label.
func Identity(ev *model.CueEvent) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(ev.Start, 'f', -1, 64))
	b.WriteByte('-')
	b.WriteString(ev.Text)

	if ev.Position != nil {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(ev.Position.Row))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(ev.Position.Column))
	}
	return b.String()
}
