package ui

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/mattn/go-runewidth"

	"github.com/ytget/subtitle-overlay/internal/cea608"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/overlay"
	"github.com/ytget/subtitle-overlay/internal/region"
)

// FyneMeasurer measures text with the fyne text renderer
type FyneMeasurer struct {
	Style fyne.TextStyle
}

// NewFyneMeasurer creates a measurer for the monospace style used by subtitle labels
func NewFyneMeasurer() *FyneMeasurer {
	return &FyneMeasurer{Style: fyne.TextStyle{Monospace: true}}
}

// MeasureText returns the size of the widest line times the number of lines
func (m *FyneMeasurer) MeasureText(text string, size float32) model.Size {
	var out model.Size
	for _, line := range strings.Split(text, "\n") {
		s := fyne.MeasureText(line, size, m.Style)
		out.Width = max(out.Width, s.Width)
		out.Height += s.Height
	}
	return out
}

// OverlayWidget renders a SubtitleOverlay. It is the overlay's surface:
// Show/Hide toggle the widget and every overlay change refreshes it.
type OverlayWidget struct {
	widget.BaseWidget

	overlay    *overlay.SubtitleOverlay
	containers int

	// OnVideoResize is called when the event stream announces a new video size
	OnVideoResize func(size fyne.Size)
}

// NewOverlayWidget creates a hidden overlay widget. Bind an overlay with SetOverlay.
func NewOverlayWidget() *OverlayWidget {
	w := &OverlayWidget{}
	w.ExtendBaseWidget(w)
	w.BaseWidget.Hide()
	return w
}

// NewSubtitleOverlay creates an overlay rendered by a new widget
func NewSubtitleOverlay(cfg overlay.Config) (*overlay.SubtitleOverlay, *OverlayWidget) {
	w := NewOverlayWidget()
	o := overlay.New(cfg, w.Surface(), NewFyneMeasurer())
	w.SetOverlay(o)
	return o, w
}

// SetOverlay binds the overlay that is rendered
func (w *OverlayWidget) SetOverlay(o *overlay.SubtitleOverlay) {
	w.overlay = o
	w.Refresh()
}

// Overlay returns the bound overlay
func (w *OverlayWidget) Overlay() *overlay.SubtitleOverlay {
	return w.overlay
}

// Surface returns the overlay.Surface backed by this widget
func (w *OverlayWidget) Surface() overlay.Surface {
	return &widgetSurface{w: w}
}

// ContainerCount returns the number of region containers currently attached
func (w *OverlayWidget) ContainerCount() int {
	return w.containers
}

// Resize resizes the widget and lets the overlay recompute its geometry
func (w *OverlayWidget) Resize(size fyne.Size) {
	if size == w.Size() {
		return
	}
	w.BaseWidget.Resize(size)
	if w.overlay != nil {
		w.overlay.Resized()
	}
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (w *OverlayWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &overlayRenderer{
		w:      w,
		labels: make(map[string]*labelObjects),
	}
	r.rebuild()
	return r
}

type widgetSurface struct {
	w *OverlayWidget
}

var (
	_ overlay.Surface = (*widgetSurface)(nil)
	_ overlay.Resizer = (*widgetSurface)(nil)
)

func (s *widgetSurface) AddContainer(*region.Container) {
	s.w.containers++
}

func (s *widgetSurface) RemoveContainer(*region.Container) {
	if s.w.containers == 0 {
		log.Printf("Warning: overlay widget has no container to remove")
		return
	}
	s.w.containers--
}

func (s *widgetSurface) Show() {
	s.w.BaseWidget.Show()
}

func (s *widgetSurface) Hide() {
	s.w.BaseWidget.Hide()
}

func (s *widgetSurface) Visible() bool {
	return s.w.Visible()
}

func (s *widgetSurface) Size() model.Size {
	size := s.w.Size()
	return model.Size{Width: size.Width, Height: size.Height}
}

func (s *widgetSurface) Refresh() {
	s.w.Refresh()
}

func (s *widgetSurface) Resize(size model.Size) {
	if s.w.OnVideoResize != nil {
		s.w.OnVideoResize(fyne.NewSize(size.Width, size.Height))
	}
}

// labelObjects caches the canvas objects of one label by label ID
type labelObjects struct {
	background *canvas.Rectangle
	texts      []*canvas.Text
	image      *canvas.Image
	imageSrc   string
}

type overlayRenderer struct {
	w       *OverlayWidget
	labels  map[string]*labelObjects
	objects []fyne.CanvasObject
}

func (r *overlayRenderer) Layout(fyne.Size) {
	r.rebuild()
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *overlayRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.w)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *overlayRenderer) Destroy() {}

// rebuild lays the canvas objects out from the overlay geometry. Objects of
// labels that are gone are dropped.
func (r *overlayRenderer) rebuild() {
	r.objects = nil
	if r.w.overlay == nil {
		return
	}

	seen := make(map[string]bool)
	for _, pc := range r.w.overlay.Layout() {
		for _, pl := range pc.Labels {
			seen[pl.Label.ID] = true
			r.objects = append(r.objects, r.place(pc, pl)...)
		}
	}

	for id := range r.labels {
		if !seen[id] {
			delete(r.labels, id)
		}
	}
}

func (r *overlayRenderer) place(pc overlay.PlacedContainer, pl overlay.PlacedLabel) []fyne.CanvasObject {
	lo, ok := r.labels[pl.Label.ID]
	if !ok {
		lo = &labelObjects{background: canvas.NewRectangle(subtitleColor(ColorNameSubtitleBackground))}
		r.labels[pl.Label.ID] = lo
	}

	origin := fyne.NewPos(pc.Rect.X+pl.Rect.X, pc.Rect.Y+pl.Rect.Y)
	size := fyne.NewSize(pl.Rect.Width, pl.Rect.Height)
	lo.background.Move(origin)
	lo.background.Resize(size)
	objects := []fyne.CanvasObject{lo.background}

	if pl.Label.Text == "" && pl.Label.Image != "" {
		lo.placeImage(pl.Label.Image, origin, size)
		return append(objects, lo.image)
	}

	if pl.Label.IsCEA608() {
		lo.placeCells(pl, origin)
	} else {
		lo.placeLines(pl, origin)
	}
	for _, t := range lo.texts {
		objects = append(objects, t)
	}
	return objects
}

// placeCells puts every rune in its grid cell. Wide runes take two cells.
func (lo *labelObjects) placeCells(pl overlay.PlacedLabel, origin fyne.Position) {
	lines := strings.Split(pl.Label.Text, "\n")
	columns := cea608.TextColumns(pl.Label.Text)
	if columns == 0 {
		lo.texts = lo.texts[:0]
		return
	}
	cell := pl.Rect.Width / float32(columns)

	n := 0
	for i, line := range lines {
		x := 0
		for _, ch := range line {
			t := lo.text(n, pl.FontSize)
			t.Text = string(ch)
			t.Move(fyne.NewPos(origin.X+float32(x)*cell, origin.Y+float32(i)*pl.LineHeight))
			x += runewidth.RuneWidth(ch)
			n++
		}
	}
	lo.texts = lo.texts[:n]
}

// placeLines centers each line in the label box
func (lo *labelObjects) placeLines(pl overlay.PlacedLabel, origin fyne.Position) {
	lines := strings.Split(pl.Label.Text, "\n")
	lineHeight := pl.Rect.Height / float32(len(lines))

	for i, line := range lines {
		t := lo.text(i, pl.FontSize)
		t.Text = line
		t.Alignment = fyne.TextAlignCenter
		t.Move(fyne.NewPos(origin.X, origin.Y+float32(i)*lineHeight))
		t.Resize(fyne.NewSize(pl.Rect.Width, lineHeight))
	}
	lo.texts = lo.texts[:len(lines)]
}

func (lo *labelObjects) text(i int, size float32) *canvas.Text {
	for len(lo.texts) <= i {
		t := canvas.NewText("", subtitleColor(ColorNameSubtitleText))
		t.TextStyle = fyne.TextStyle{Monospace: true}
		lo.texts = append(lo.texts, t)
	}
	t := lo.texts[i]
	t.TextSize = size
	return t
}

func (lo *labelObjects) placeImage(src string, origin fyne.Position, size fyne.Size) {
	if lo.image == nil || lo.imageSrc != src {
		if uri, err := storage.ParseURI(src); err == nil {
			lo.image = canvas.NewImageFromURI(uri)
		} else {
			lo.image = canvas.NewImageFromFile(src)
		}
		lo.image.FillMode = canvas.ImageFillContain
		lo.imageSrc = src
	}
	lo.image.Move(origin)
	lo.image.Resize(size)
}
