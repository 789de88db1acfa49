package cea608

// Package cea608 implements the CEA-608 caption grid: the rows × columns
// character grid scaled by the user font size factor, remapping of rows that
// fall off a shrunk grid, and the font size / letter spacing that make glyphs
// fill the grid evenly on an overlay of a given pixel size.
//
// Everything here is a pure recomputation over the grid state; label geometry
// is derived on demand from (label, grid, layout) and never cached on labels.
