package playback

// Package playback replays a cue timeline as a media player would: it keeps a
// playback position, emits cue enter/update/exit and scripted player events in
// order on a channel, and lets a single consumer apply them synchronously.
