package model

import "fmt"

// Size is a pixel box
type Size struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// IsEmpty returns true if either dimension is not positive
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%.0fx%.0f", s.Width, s.Height)
}

// Rect is an absolute pixel rectangle inside the overlay
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float32 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float32 {
	return r.Y + r.Height
}
