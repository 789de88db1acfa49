package cue

import (
	"sort"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Entry is one active cue
type Entry struct {
	Identity string
	Event    *model.CueEvent
	Label    *model.Label

	seq uint64
}

// Tracker holds the active cues of one overlay. It is not safe for concurrent
// use; all calls happen on the event handling path.
type Tracker struct {
	entries map[string][]*Entry
	count   int
	seq     uint64
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string][]*Entry)}
}

// Enter records a new active cue
func (t *Tracker) Enter(ev *model.CueEvent, label *model.Label) {
	t.push(ev, label)
}

// Update swaps the label of the oldest active cue with the identity of ev. It
// returns the label to replace, or false if no such cue is active, in which
// case nothing is recorded.
func (t *Tracker) Update(ev *model.CueEvent, label *model.Label) (*model.Label, bool) {
	old, ok := t.pop(Identity(ev))
	if !ok {
		return nil, false
	}
	t.push(ev, label)
	return old.Label, true
}

// Exit removes the oldest active cue with the identity of ev and returns its
// label. It returns false if the cue is not active, e.g. after a clear.
func (t *Tracker) Exit(ev *model.CueEvent) (*model.Label, bool) {
	entry, ok := t.pop(Identity(ev))
	if !ok {
		return nil, false
	}
	return entry.Label, true
}

// Labels returns the labels recorded for the identity of ev, oldest first
func (t *Tracker) Labels(ev *model.CueEvent) []*model.Label {
	bucket := t.entries[Identity(ev)]
	labels := make([]*model.Label, 0, len(bucket))
	for _, e := range bucket {
		labels = append(labels, e.Label)
	}
	return labels
}

// ClearInactive removes every active cue whose [start, end) interval does not
// contain time and returns the removed entries in the order they were added.
// Cues with an unknown end are only removed when time is before their start.
func (t *Tracker) ClearInactive(time float64) []*Entry {
	var removed []*Entry

	for id, bucket := range t.entries {
		kept := bucket[:0]
		for _, e := range bucket {
			if e.Event.Encloses(time) {
				kept = append(kept, e)
				continue
			}
			removed = append(removed, e)
		}

		t.count -= len(bucket) - len(kept)
		if len(kept) == 0 {
			delete(t.entries, id)
		} else {
			t.entries[id] = kept
		}
	}

	sort.Slice(removed, func(i, j int) bool {
		return removed[i].seq < removed[j].seq
	})
	return removed
}

// Clear drops all active cues
func (t *Tracker) Clear() {
	t.entries = make(map[string][]*Entry)
	t.count = 0
}

// HasCues reports whether any cue is active
func (t *Tracker) HasCues() bool {
	return t.count > 0
}

// Count returns the number of active cues
func (t *Tracker) Count() int {
	return t.count
}

// Entries returns all active entries in the order they were added
func (t *Tracker) Entries() []*Entry {
	all := make([]*Entry, 0, t.count)
	for _, bucket := range t.entries {
		all = append(all, bucket...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].seq < all[j].seq
	})
	return all
}

func (t *Tracker) push(ev *model.CueEvent, label *model.Label) {
	t.seq++
	id := Identity(ev)
	t.entries[id] = append(t.entries[id], &Entry{
		Identity: id,
		Event:    ev,
		Label:    label,
		seq:      t.seq,
	})
	t.count++
}

// pop removes the oldest entry of a bucket. Colliding identities that exit
// out of order may remove the wrong one of two identical cues.
func (t *Tracker) pop(id string) (*Entry, bool) {
	bucket := t.entries[id]
	if len(bucket) == 0 {
		return nil, false
	}

	entry := bucket[0]
	if len(bucket) == 1 {
		delete(t.entries, id)
	} else {
		t.entries[id] = bucket[1:]
	}
	t.count--
	return entry, true
}
