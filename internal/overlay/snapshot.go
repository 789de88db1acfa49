package overlay

// Snapshot is a printable view of the overlay state at a playback time
type Snapshot struct {
	Time       float64             `yaml:"time"`
	Visible    bool                `yaml:"visible"`
	CEA608     bool                `yaml:"cea608"`
	Rows       int                 `yaml:"rows,omitempty"`
	Columns    int                 `yaml:"columns,omitempty"`
	FontSize   float32             `yaml:"font_size,omitempty"`
	Containers []ContainerSnapshot `yaml:"containers,omitempty"`
}

// ContainerSnapshot describes one placed region container
type ContainerSnapshot struct {
	ID     string          `yaml:"id"`
	Class  string          `yaml:"class"`
	Policy string          `yaml:"policy"`
	Box    [4]float32      `yaml:"box,flow"`
	Labels []LabelSnapshot `yaml:"labels"`
}

// LabelSnapshot describes one placed label. Boxes are x, y, width, height
// in overlay pixels.
type LabelSnapshot struct {
	Text     string     `yaml:"text"`
	Box      [4]float32 `yaml:"box,flow"`
	FontSize float32    `yaml:"font_size"`
	Preview  bool       `yaml:"preview,omitempty"`
}

// Snapshot returns the current layout tagged with time
func (o *SubtitleOverlay) Snapshot(time float64) Snapshot {
	s := Snapshot{
		Time:    time,
		Visible: o.surface.Visible(),
		CEA608:  o.engine.Enabled(),
	}
	if s.CEA608 {
		state := o.GridState()
		s.Rows = state.NumRows
		s.Columns = state.NumColumns
		s.FontSize = o.engine.Layout().FontSize
	}

	for _, pc := range o.Layout() {
		cs := ContainerSnapshot{
			ID:     pc.Container.ID(),
			Class:  pc.Container.Class(),
			Policy: pc.Container.Policy.String(),
			Box:    [4]float32{pc.Rect.X, pc.Rect.Y, pc.Rect.Width, pc.Rect.Height},
		}
		for _, pl := range pc.Labels {
			text := pl.Label.Text
			if text == "" {
				text = pl.Label.Markup
			}
			cs.Labels = append(cs.Labels, LabelSnapshot{
				Text:     text,
				Box:      [4]float32{pl.Rect.X, pl.Rect.Y, pl.Rect.Width, pl.Rect.Height},
				FontSize: pl.FontSize,
				Preview:  pl.Label.Preview,
			})
		}
		s.Containers = append(s.Containers, cs)
	}
	return s
}
