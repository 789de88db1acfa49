package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the subtitle overlay on top of a video-sized area, drives it from a
// replayed timeline and edits subtitle settings with a live preview. All UI
// strings are localized via Localization.
