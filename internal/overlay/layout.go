package overlay

import (
	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/region"
)

// PlacedLabel is a label with its computed geometry and text style
type PlacedLabel struct {
	Label *model.Label
	Rect  model.Rect

	FontSize      float32
	LineHeight    float32
	LetterSpacing float32
	NoWrap        bool
}

// PlacedContainer is a region container with its computed box
type PlacedContainer struct {
	Container *region.Container
	Rect      model.Rect
	Labels    []PlacedLabel
}

// Layout computes the geometry of every container and label for the current
// surface size, grid and font layout. It does not change any state.
func (o *SubtitleOverlay) Layout() []PlacedContainer {
	size := o.surface.Size()
	if size.IsEmpty() {
		return nil
	}

	containers := o.regions.Containers()
	placed := make([]PlacedContainer, 0, len(containers))
	for _, c := range containers {
		pc := o.placeContainer(c, size)
		if o.cfg.ForceIntoView {
			for i := range pc.Labels {
				pc.Labels[i].Rect = forceIntoView(pc.Labels[i].Rect, size)
			}
		}
		placed = append(placed, pc)
	}
	return placed
}

func (o *SubtitleOverlay) placeContainer(c *region.Container, size model.Size) PlacedContainer {
	labels := make([]PlacedLabel, 0, c.Count())
	for _, l := range c.Labels() {
		labels = append(labels, o.styleLabel(l, size))
	}

	pc := PlacedContainer{Container: c, Labels: labels}
	switch {
	case c.Policy == region.PolicyExplicit:
		pc.Rect = region.ParseStyle(c.Style).Rect(size, stackSize(labels))
		stackDown(pc.Labels, pc.Rect)
	case c.Policy == region.PolicyStatic:
		o.placeCueBoxes(&pc, model.Rect{Width: size.Width, Height: size.Height})
	case c.Ref.Kind == model.RegionVTT && c.Ref.VTT != nil:
		pc.Rect = region.VTTRegionRect(c.Ref.VTT, size, o.cfg.VTTLineHeight)
		o.placeRegionCues(&pc)
	case c.Ref.Kind == model.RegionCEA608Row:
		o.placeRow(&pc, size)
	default:
		pc.Rect = o.bottomRect(size, stackSize(labels))
		stackDown(pc.Labels, pc.Rect)
	}
	return pc
}

// styleLabel sizes a label. Grid labels take the CEA-608 font layout, all
// others the configured text size scaled by the font size preference.
func (o *SubtitleOverlay) styleLabel(l *model.Label, size model.Size) PlacedLabel {
	if l.IsCEA608() && o.engine.Enabled() {
		layout := o.engine.Layout()
		style := o.engine.Grid().LabelStyle(*l.Position, layout)
		text := cea608.TextSize(l.Text, style, layout)
		return PlacedLabel{
			Label:         l,
			Rect:          model.Rect{X: float32(style.LeftPercent) / 100 * size.Width, Width: text.Width, Height: text.Height},
			FontSize:      style.FontSize,
			LineHeight:    style.LineHeight,
			LetterSpacing: style.LetterSpacing,
			NoWrap:        style.NoWrap,
		}
	}

	fontSize := o.cfg.TextSize * float32(o.textScale)
	pl := PlacedLabel{Label: l, FontSize: fontSize, LineHeight: fontSize}
	if l.Text == "" && l.Image != "" {
		pl.Rect = model.Rect{Width: size.Width, Height: float32(o.cfg.ImageLines) * fontSize}
		return pl
	}

	text := o.measurer.MeasureText(l.Text, fontSize)
	if text.Width > size.Width {
		text.Width = size.Width
	}
	pl.Rect = model.Rect{Width: text.Width, Height: text.Height}
	return pl
}

// bottomRect anchors a full width box at the bottom, above the control bar if shown
func (o *SubtitleOverlay) bottomRect(size model.Size, content model.Size) model.Rect {
	margin := float32(0)
	if o.controlBarVisible {
		margin = o.cfg.ControlBarMargin
	}
	return model.Rect{
		Y:      size.Height - content.Height - margin,
		Width:  size.Width,
		Height: content.Height,
	}
}

// placeRow puts a grid row container at its row. The row comes from the
// position class, which follows the font size factor. A class at the row
// count is drawn on the last row.
func (o *SubtitleOverlay) placeRow(pc *PlacedContainer, size model.Size) {
	rowHeight := o.engine.Layout().RowHeight
	row, ok := cea608.ParseRowClass(pc.Container.Class())
	if !ok || rowHeight <= 0 {
		pc.Rect = o.bottomRect(size, stackSize(pc.Labels))
		stackDown(pc.Labels, pc.Rect)
		return
	}

	row = min(row, o.engine.Grid().Rows()-1)
	pc.Rect = model.Rect{
		Y:      float32(row) * rowHeight,
		Width:  size.Width,
		Height: rowHeight,
	}
	for i := range pc.Labels {
		pc.Labels[i].Rect.Y = pc.Rect.Y
	}
}

// placeCueBoxes positions each VTT cue box on its own inside area
func (o *SubtitleOverlay) placeCueBoxes(pc *PlacedContainer, area model.Rect) {
	var bounds model.Rect
	for i := range pc.Labels {
		pl := &pc.Labels[i]
		props := pl.Label.VTT
		if props == nil {
			props = &model.VTTProperties{}
		}
		content := model.Size{Width: pl.Rect.Width, Height: pl.Rect.Height}
		pl.Rect = region.VTTCueBoxRect(props, area, content, o.cfg.VTTLineHeight)
		if i == 0 {
			bounds = pl.Rect
		} else {
			bounds = union(bounds, pl.Rect)
		}
	}
	pc.Rect = bounds
}

// placeRegionCues stacks the cues of a VTT region from its bottom line up.
// The horizontal placement comes from each cue box.
func (o *SubtitleOverlay) placeRegionCues(pc *PlacedContainer) {
	y := pc.Rect.Bottom()
	for i := len(pc.Labels) - 1; i >= 0; i-- {
		pl := &pc.Labels[i]
		props := pl.Label.VTT
		if props == nil {
			props = &model.VTTProperties{}
		}
		content := model.Size{Width: pl.Rect.Width, Height: pl.Rect.Height}
		box := region.VTTCueBoxRect(&model.VTTProperties{
			Size:          props.Size,
			Position:      props.Position,
			PositionAlign: props.PositionAlign,
			Align:         props.Align,
		}, pc.Rect, content, o.cfg.VTTLineHeight)

		y -= box.Height
		box.Y = y
		pl.Rect = box
	}
}

// stackDown centers labels horizontally in area and stacks them from its top
func stackDown(labels []PlacedLabel, area model.Rect) {
	y := area.Y
	for i := range labels {
		r := &labels[i].Rect
		r.X = area.X + (area.Width-r.Width)/2
		r.Y = y
		y += r.Height
	}
}

func stackSize(labels []PlacedLabel) model.Size {
	var s model.Size
	for _, l := range labels {
		if l.Rect.Width > s.Width {
			s.Width = l.Rect.Width
		}
		s.Height += l.Rect.Height
	}
	return s
}

func union(a, b model.Rect) model.Rect {
	x := min(a.X, b.X)
	y := min(a.Y, b.Y)
	return model.Rect{
		X:      x,
		Y:      y,
		Width:  max(a.Right(), b.Right()) - x,
		Height: max(a.Bottom(), b.Bottom()) - y,
	}
}

// forceIntoView pins a label that crosses an overlay edge to that edge. Edges
// are checked top, right, bottom, left; a label larger than the overlay ends
// up pinned to the bottom left corner.
func forceIntoView(r model.Rect, size model.Size) model.Rect {
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Right() > size.Width {
		r.X = size.Width - r.Width
	}
	if r.Bottom() > size.Height {
		r.Y = size.Height - r.Height
	}
	if r.X < 0 {
		r.X = 0
	}
	return r
}
