package playback

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/platform"
)

var _ Source = (*Player)(nil)

// Defaults
const (
	DefaultTick = 50 * time.Millisecond
	DefaultRate = 1.0
)

// Player replays a timeline. Step, Seek and Start may be used directly for
// deterministic replays; Run drives them from a ticker.
type Player struct {
	timeline *platform.Timeline
	cues     []platform.TimelineCue

	mu       sync.Mutex
	position float64
	active   []bool
	fired    []bool // scripted events
	finished bool
	started  bool

	tick     time.Duration
	rate     float64
	seeks    chan float64
	onUpdate func(position float64) // callback for UI updates
}

// NewPlayer creates a player positioned at the start of timeline
func NewPlayer(timeline *platform.Timeline) *Player {
	cues := timeline.SortedCues()
	return &Player{
		timeline: timeline,
		cues:     cues,
		active:   make([]bool, len(cues)),
		fired:    make([]bool, len(timeline.Events)),
		tick:     DefaultTick,
		rate:     DefaultRate,
		seeks:    make(chan float64, 1),
	}
}

// SetUpdateCallback sets the callback function for position updates
func (p *Player) SetUpdateCallback(callback func(position float64)) {
	p.onUpdate = callback
}

// SetRate sets the playback speed multiplier
func (p *Player) SetRate(rate float64) {
	if rate <= 0 || math.IsNaN(rate) {
		rate = DefaultRate
	}
	p.rate = rate
}

// SetTick sets the interval of the Run loop
func (p *Player) SetTick(tick time.Duration) {
	if tick <= 0 {
		tick = DefaultTick
	}
	p.tick = tick
}

// Position returns the playback position in seconds
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Finished reports whether playback reached the end
func (p *Player) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// Start returns the events a player fires when the source is loaded. Later
// calls resume playback: the load events are not repeated and only cues
// entered meanwhile are reported.
func (p *Player) Start() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var events []model.Event
	if !p.started {
		p.started = true
		events = append(events, model.Event{Kind: model.EventResized, Size: p.timeline.Size})
		if p.timeline.FontSize != "" {
			events = append(events, model.Event{Kind: model.EventFontSizeChanged, FontSize: p.timeline.FontSize})
		}
		events = append(events, model.Event{Kind: model.EventSubtitleEnabled})
	}
	return append(events, p.fireAt(p.position, true)...)
}

// Step advances playback by dt seconds and returns the events that happened,
// in order. A scripted seek ends the step at the new position.
func (p *Player) Step(dt float64) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return nil
	}

	to := math.Min(p.position+dt, p.timeline.Duration)
	var events []model.Event
	for {
		next, ok := p.nextTime(to)
		if !ok {
			p.position = to
			break
		}

		p.position = next
		events = append(events, p.fireAt(next, false)...)
		if p.position != next {
			// a scripted seek moved the position
			return events
		}
	}

	if p.position >= p.timeline.Duration {
		p.finished = true
		events = append(events, model.Event{Kind: model.EventPlaybackFinished})
	}
	return events
}

// Seek jumps to time. Cues that no longer enclose the new position are dropped
// without exit events, as players do when they skip over them; the Seeked
// event lets the consumer prune them.
func (p *Player) Seek(t float64) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seek(model.EventSeeked, t)
}

// RequestSeek asks a running player to seek. A pending request is replaced.
func (p *Player) RequestSeek(t float64) {
	select {
	case <-p.seeks:
	default:
	}
	p.seeks <- t
}

func (p *Player) seek(kind model.EventKind, t float64) []model.Event {
	t = math.Max(0, math.Min(t, p.timeline.Duration))
	p.position = t
	p.finished = false

	for i := range p.cues {
		if p.active[i] && !p.cues[i].Encloses(t) {
			p.active[i] = false
		}
	}
	for i, e := range p.timeline.Events {
		if e.At < t {
			p.fired[i] = true
		}
	}

	events := []model.Event{{Kind: kind, Time: t}}
	return append(events, p.fireAt(t, true)...)
}

// nextTime returns the earliest pending point in (position, to]
func (p *Player) nextTime(to float64) (float64, bool) {
	next := math.Inf(1)
	consider := func(t float64) {
		if t > p.position && t <= to && t < next {
			next = t
		}
	}

	for i, c := range p.cues {
		consider(c.Start)
		if c.End != nil && p.active[i] {
			consider(*c.End)
		}
		for _, u := range c.Updates {
			consider(u.At)
		}
	}
	for i, e := range p.timeline.Events {
		if !p.fired[i] {
			consider(e.At)
		}
	}
	return next, !math.IsInf(next, 1)
}

// fireAt emits everything that happens at t: exits, updates, enters, then
// scripted events. With catchUp, every cue enclosing t enters, not only the
// ones starting at t.
func (p *Player) fireAt(t float64, catchUp bool) []model.Event {
	var events []model.Event

	for i := range p.cues {
		c := &p.cues[i]
		if p.active[i] && c.End != nil && *c.End <= t {
			p.active[i] = false
			events = append(events, model.Event{Kind: model.EventCueExit, Cue: cueEvent(c, t)})
		}
	}

	for i := range p.cues {
		c := &p.cues[i]
		if !p.active[i] {
			continue
		}
		for _, u := range c.Updates {
			if u.At == t {
				events = append(events, model.Event{Kind: model.EventCueUpdate, Cue: cueEvent(c, t)})
			}
		}
	}

	for i := range p.cues {
		c := &p.cues[i]
		if p.active[i] || !c.Encloses(t) {
			continue
		}
		if catchUp || c.Start == t {
			p.active[i] = true
			events = append(events, model.Event{Kind: model.EventCueEnter, Cue: cueEvent(c, t)})
		}
	}

	for i, e := range p.timeline.Events {
		if p.fired[i] || e.At != t {
			continue
		}
		p.fired[i] = true

		switch e.Kind {
		case model.EventSeeked, model.EventTimeShifted:
			return append(events, p.seek(e.Kind, e.Time)...)
		default:
			events = append(events, e.Event())
		}
	}
	return events
}

// cueEvent returns the cue as the player reports it at t, with all updates up
// to t applied. Every call returns a fresh event.
func cueEvent(c *platform.TimelineCue, t float64) *model.CueEvent {
	ev := c.CueEvent
	for _, u := range c.Updates {
		if u.At > t {
			continue
		}
		if u.HTML != "" {
			ev.HTML = u.HTML
		}
		if u.End != nil {
			end := *u.End
			ev.End = &end
		}
	}
	return &ev
}

// Run replays the timeline in real time, sending events to out. Running a
// paused player again resumes it. It returns nil once playback finished and
// ctx.Err() if cancelled. out is not closed.
func (p *Player) Run(ctx context.Context, out chan<- model.Event) error {
	if err := p.send(ctx, out, p.Start()); err != nil {
		return err
	}

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-p.seeks:
			if err := p.send(ctx, out, p.Seek(t)); err != nil {
				return err
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds() * p.rate
			last = now
			if err := p.send(ctx, out, p.Step(dt)); err != nil {
				return err
			}
			if p.Finished() {
				log.Printf("Playback of %q finished at %.2fs", p.timeline.Title, p.Position())
				return nil
			}
		}
	}
}

func (p *Player) send(ctx context.Context, out chan<- model.Event, events []model.Event) error {
	for _, ev := range events {
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if p.onUpdate != nil {
		p.onUpdate(p.Position())
	}
	return nil
}

// Pump delivers events to h one by one until in is closed or ctx is done
func Pump(ctx context.Context, in <-chan model.Event, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			h.HandleEvent(ev)
		}
	}
}
