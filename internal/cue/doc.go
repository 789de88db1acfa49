package cue

// Package cue tracks the currently active cues. Each cue event gets a composite
// identity; entries sharing an identity are kept in a FIFO queue so that update
// and exit always resolve to the oldest entry. The package also turns cue
// events into labels.
