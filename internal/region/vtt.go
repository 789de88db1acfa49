package region

import (
	"github.com/ytget/subtitle-overlay/internal/model"
)

// DefaultVTTLineHeight is the height of one VTT region line in pixels
const DefaultVTTLineHeight float32 = 28

// VTTRegionRect returns the box of a WebVTT region. The region anchor point is
// placed on the viewport anchor point.
func VTTRegionRect(r *model.VTTRegion, overlay model.Size, lineHeight float32) model.Rect {
	width := overlay.Width * float32(r.Width) / 100
	height := float32(r.Lines) * lineHeight

	return model.Rect{
		X:      overlay.Width*float32(r.ViewportAnchorX)/100 - width*float32(r.RegionAnchorX)/100,
		Y:      overlay.Height*float32(r.ViewportAnchorY)/100 - height*float32(r.RegionAnchorY)/100,
		Width:  width,
		Height: height,
	}
}

// VTTCueBoxRect returns the box of a WebVTT cue inside area. content is the
// rendered size of the cue text; only its height is used.
func VTTCueBoxRect(props *model.VTTProperties, area model.Rect, content model.Size, lineHeight float32) model.Rect {
	size := float32(props.Size)
	if size <= 0 || size > 100 {
		size = 100
	}

	r := model.Rect{
		Width:  area.Width * size / 100,
		Height: content.Height,
	}

	left := cueLeftPercent(props, size)
	r.X = area.X + area.Width*left/100
	if r.X < area.X {
		r.X = area.X
	}
	if r.Right() > area.Right() {
		r.X = area.Right() - r.Width
	}

	switch {
	case props.Line == nil:
		r.Y = area.Bottom() - r.Height
	case props.SnapToLines:
		n := float32(*props.Line)
		if n >= 0 {
			r.Y = area.Y + n*lineHeight
		} else {
			r.Y = area.Bottom() + (n+1)*lineHeight - r.Height
		}
	default:
		anchor := area.Y + area.Height*float32(*props.Line)/100
		switch props.LineAlign {
		case "center":
			r.Y = anchor - r.Height/2
		case "end":
			r.Y = anchor - r.Height
		default:
			r.Y = anchor
		}
	}
	return r
}

// cueLeftPercent returns the left edge of the cue box in percent of the area
func cueLeftPercent(props *model.VTTProperties, size float32) float32 {
	var position float32
	if props.Position != nil {
		position = float32(*props.Position)
	} else {
		switch props.Align {
		case "left", "start":
			position = 0
		case "right", "end":
			position = 100
		default:
			position = 50
		}
	}

	align := props.PositionAlign
	if align == "" || align == "auto" {
		switch props.Align {
		case "left", "start":
			align = "line-left"
		case "right", "end":
			align = "line-right"
		default:
			align = "center"
		}
	}

	switch align {
	case "line-left":
		return position
	case "line-right":
		return position - size
	default:
		return position - size/2
	}
}
