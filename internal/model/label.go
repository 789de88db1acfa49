package model

import "fmt"

// RegionKind tells how a label is grouped on the overlay. It is resolved once
// when the label is built.
type RegionKind int

const (
	// RegionDefault is the catch-all bottom region
	RegionDefault RegionKind = iota
	// RegionNamed is an explicitly named region from the cue
	RegionNamed
	// RegionCEA608Row is a synthesized region for one CEA-608 grid row
	RegionCEA608Row
	// RegionVTT is a WebVTT region with an id
	RegionVTT
	// RegionVTTBox groups VTT cues that have no region; each cue box positions itself
	RegionVTTBox
)

// Region container ids and css names shared by all overlays
const (
	DefaultRegionName = "default"
	VTTRegionName     = "vtt"
	CEA608RowPrefix   = "cea608-row-"
)

func (k RegionKind) String() string {
	switch k {
	case RegionDefault:
		return "default"
	case RegionNamed:
		return "named"
	case RegionCEA608Row:
		return "cea608-row"
	case RegionVTT:
		return "vtt-region"
	case RegionVTTBox:
		return "vtt-box"
	default:
		return "unknown"
	}
}

// IsVTT returns true for both VTT region kinds
func (k RegionKind) IsVTT() bool {
	return k == RegionVTT || k == RegionVTTBox
}

// RegionRef identifies the region container a label belongs to
type RegionRef struct {
	Kind RegionKind
	// ID is the container key
	ID string
	// Row is the grid row the region was synthesized for (RegionCEA608Row only)
	Row int
	// VTT is the region descriptor (RegionVTT only)
	VTT *VTTRegion
}

// ClassName returns the position class of the region container
func (r RegionRef) ClassName() string {
	if r.Kind.IsVTT() {
		return "subtitle-position-" + VTTRegionName
	}
	return "subtitle-position-" + r.ID
}

// CEA608RowRegion returns the synthesized region for a grid row
func CEA608RowRegion(row int) RegionRef {
	return RegionRef{Kind: RegionCEA608Row, ID: fmt.Sprintf("%s%d", CEA608RowPrefix, row), Row: row}
}

// Label is the visual unit placed on the overlay. A label is owned by exactly
// one region container at a time.
type Label struct {
	// ID is unique per label instance
	ID string
	// Text is the plain text used for measuring and text rendering
	Text string
	// Markup is the preferred content: cue HTML, image markup or escaped text
	Markup string
	// Image is the image source for image cues
	Image string

	Region      RegionRef
	RegionStyle string
	VTT         *VTTProperties

	// Position is the resolved (possibly remapped) grid position, nil for non CEA-608 labels
	Position *Position
	// OriginalRow is the grid row as received, before any remapping
	OriginalRow *int

	// Preview marks the settings preview label
	Preview bool
}

// IsCEA608 returns true if the label is grid positioned
func (l *Label) IsCEA608() bool {
	return l.Position != nil
}

// IsVTT returns true if the label carries VTT positioning
func (l *Label) IsVTT() bool {
	return l.VTT != nil
}

// OriginalRowPosition returns the remembered original row
func (l *Label) OriginalRowPosition() (int, bool) {
	if l.OriginalRow == nil {
		return 0, false
	}
	return *l.OriginalRow, true
}

func (l *Label) String() string {
	return fmt.Sprintf("label %s [%s] %q", l.ID, l.Region.ID, l.Text)
}
