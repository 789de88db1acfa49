package region

// Package region groups labels into region containers. A container exists on
// the overlay exactly while it holds at least one label. The package also
// holds the per format geometry: explicit region styles, WebVTT region boxes
// and WebVTT cue boxes.
