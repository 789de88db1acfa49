package model

// Position is a CEA-608 grid position. Missing fields decode to zero.
type Position struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

// VTTRegion describes a WebVTT region. Width and anchors are percentages.
type VTTRegion struct {
	ID              string  `yaml:"id"`
	Width           float64 `yaml:"width"`
	Lines           int     `yaml:"lines"`
	RegionAnchorX   float64 `yaml:"regionAnchorX"`
	RegionAnchorY   float64 `yaml:"regionAnchorY"`
	ViewportAnchorX float64 `yaml:"viewportAnchorX"`
	ViewportAnchorY float64 `yaml:"viewportAnchorY"`
}

// VTTProperties are the positioning settings of a WebVTT cue
type VTTProperties struct {
	Region        *VTTRegion `yaml:"region,omitempty"`
	Vertical      string     `yaml:"vertical,omitempty"`
	Line          *float64   `yaml:"line,omitempty"` // nil means "auto"
	LineAlign     string     `yaml:"lineAlign,omitempty"`
	SnapToLines   bool       `yaml:"snapToLines,omitempty"`
	Position      *float64   `yaml:"position,omitempty"` // nil means "auto"
	PositionAlign string     `yaml:"positionAlign,omitempty"`
	Size          float64    `yaml:"size,omitempty"` // percent, 0 means 100
	Align         string     `yaml:"align,omitempty"`
}

// HasRegion reports whether the cue is placed inside a VTT region
func (v *VTTProperties) HasRegion() bool {
	return v != nil && v.Region != nil
}

// CueEvent is a cue as delivered by the player. It is never mutated after
// being received.
type CueEvent struct {
	Start       float64        `yaml:"start"`
	End         *float64       `yaml:"end,omitempty"` // nil if not known yet
	Text        string         `yaml:"text,omitempty"`
	HTML        string         `yaml:"html,omitempty"`
	Image       string         `yaml:"image,omitempty"`
	Position    *Position      `yaml:"position,omitempty"`
	Region      string         `yaml:"region,omitempty"`
	RegionStyle string         `yaml:"regionStyle,omitempty"`
	VTT         *VTTProperties `yaml:"vtt,omitempty"`
}

// IsCEA608 returns true if the cue carries a grid position
func (c *CueEvent) IsCEA608() bool {
	return c.Position != nil
}

// Encloses reports whether t lies within [Start, End). A cue without a known
// end encloses every time after its start.
func (c *CueEvent) Encloses(t float64) bool {
	if t < c.Start {
		return false
	}
	if c.End != nil && t >= *c.End {
		return false
	}
	return true
}

// Row returns the grid row, or 0 for cues without position
func (c *CueEvent) Row() int {
	if c.Position == nil {
		return 0
	}
	return c.Position.Row
}

// Column returns the grid column, or 0 for cues without position
func (c *CueEvent) Column() int {
	if c.Position == nil {
		return 0
	}
	return c.Position.Column
}
