package overlay

// Package overlay is the subtitle overlay: it consumes player events, keeps the
// active cues, the region containers and the CEA-608 grid in sync, and computes
// the pixel layout of everything that is on screen. Rendering is left to a
// Surface implementation.
