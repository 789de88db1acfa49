package model

// Package model defines the data shared by the caption pipeline: cue events as
// delivered by the host player, rendered labels and their region references,
// and the player lifecycle events that drive the overlay.
