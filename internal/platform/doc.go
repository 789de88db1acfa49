package platform

// Package platform contains the filesystem side of the overlay: cue timeline
// files (YAML), their discovery on disk, and revealing them in the OS file
// manager.
