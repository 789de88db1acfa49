package region

import (
	"github.com/ytget/subtitle-overlay/internal/model"
)

// Policy is the positioning policy chosen when a container is created
type Policy int

const (
	// PolicyDefault positions the container by its region kind
	PolicyDefault Policy = iota
	// PolicyExplicit applies the region style of the first label verbatim
	PolicyExplicit
	// PolicyStatic leaves positioning to the cue boxes (VTT cues without region)
	PolicyStatic
)

func (p Policy) String() string {
	switch p {
	case PolicyExplicit:
		return "explicit"
	case PolicyStatic:
		return "static"
	default:
		return "default"
	}
}

// Container holds the labels of one region
type Container struct {
	Ref model.RegionRef
	// Classes are the css classes of the container; the first one is the position class
	Classes []string
	Policy  Policy
	// Style is the explicit region style (PolicyExplicit only)
	Style string

	labels []*model.Label
}

func newContainer(label *model.Label) *Container {
	c := &Container{
		Ref:     label.Region,
		Classes: []string{label.Region.ClassName()},
	}
	if label.Region.Kind == model.RegionVTT && label.Region.VTT != nil {
		c.Classes = append(c.Classes, "vtt-region-"+label.Region.VTT.ID)
	}

	switch {
	case label.RegionStyle != "":
		c.Policy = PolicyExplicit
		c.Style = label.RegionStyle
	case label.Region.Kind == model.RegionVTTBox:
		c.Policy = PolicyStatic
	default:
		c.Policy = PolicyDefault
	}
	return c
}

// ID returns the container key
func (c *Container) ID() string {
	return c.Ref.ID
}

// Class returns the position class
func (c *Container) Class() string {
	return c.Classes[0]
}

// SetClass replaces the position class
func (c *Container) SetClass(class string) {
	c.Classes[0] = class
}

// Labels returns the labels in insertion order
func (c *Container) Labels() []*model.Label {
	return c.labels
}

// First returns the oldest label, or nil
func (c *Container) First() *model.Label {
	if len(c.labels) == 0 {
		return nil
	}
	return c.labels[0]
}

// Count returns the number of labels
func (c *Container) Count() int {
	return len(c.labels)
}

// IsEmpty reports whether the container holds no label
func (c *Container) IsEmpty() bool {
	return len(c.labels) == 0
}

func (c *Container) add(label *model.Label) {
	c.labels = append(c.labels, label)
}

func (c *Container) remove(label *model.Label) bool {
	for i, l := range c.labels {
		if l == label {
			c.labels = append(c.labels[:i], c.labels[i+1:]...)
			return true
		}
	}
	return false
}
