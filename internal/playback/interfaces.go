package playback

import (
	"context"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Handler consumes player events one at a time
type Handler interface {
	HandleEvent(ev model.Event)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ev model.Event)

// HandleEvent calls f(ev)
func (f HandlerFunc) HandleEvent(ev model.Event) {
	f(ev)
}

// Source defines the interface for an event producing player
type Source interface {
	Run(ctx context.Context, out chan<- model.Event) error
	RequestSeek(time float64)
	Position() float64
	SetUpdateCallback(func(position float64))
}
