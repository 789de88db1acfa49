package cue

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// RowResolver maps a received grid row to the row it is displayed on
type RowResolver interface {
	ResolveRowNumber(row int) int
}

// BuildLabel creates the label for a cue event. Content prefers HTML, then
// image markup, then plain text. The event is not modified: the remapped grid
// position and the original row live on the label only.
func BuildLabel(ev *model.CueEvent, rows RowResolver) *model.Label {
	label := &model.Label{
		ID:          uuid.NewString(),
		RegionStyle: ev.RegionStyle,
		VTT:         ev.VTT,
		Image:       ev.Image,
	}

	switch {
	case ev.HTML != "":
		label.Markup = ev.HTML
		label.Text = PlainText(ev.HTML)
	case ev.Image != "":
		label.Markup = ImageMarkup(ev.Image)
	default:
		label.Markup = html.EscapeString(ev.Text)
		label.Text = ev.Text
	}

	if ev.Position != nil {
		original := ev.Position.Row
		label.OriginalRow = &original
		label.Position = &model.Position{
			Row:    rows.ResolveRowNumber(original),
			Column: ev.Position.Column,
		}
	}

	label.Region = ResolveRegion(ev, label.Position)
	return label
}

// BuildPreviewLabel creates the sample label shown while subtitle settings are edited
func BuildPreviewLabel(text string) *model.Label {
	return &model.Label{
		ID:      uuid.NewString(),
		Text:    text,
		Markup:  html.EscapeString(text),
		Region:  model.RegionRef{Kind: model.RegionDefault, ID: model.DefaultRegionName},
		Preview: true,
	}
}

// ResolveRegion returns the region container a cue belongs to. VTT cues group
// by VTT region id and share one container when they have none. Other cues use
// their region name, a row region for grid positioned cues, or the default.
func ResolveRegion(ev *model.CueEvent, pos *model.Position) model.RegionRef {
	if ev.VTT != nil {
		if ev.VTT.Region != nil {
			id := ev.VTT.Region.ID
			if id == "" {
				id = model.VTTRegionName
			}
			return model.RegionRef{Kind: model.RegionVTT, ID: id, VTT: ev.VTT.Region}
		}
		return model.RegionRef{Kind: model.RegionVTTBox, ID: model.VTTRegionName}
	}

	if ev.Region != "" {
		return model.RegionRef{Kind: model.RegionNamed, ID: ev.Region}
	}
	if pos != nil {
		return model.CEA608RowRegion(pos.Row)
	}
	return model.RegionRef{Kind: model.RegionDefault, ID: model.DefaultRegionName}
}

// ImageMarkup returns an img element that stretches the image to the label width
func ImageMarkup(src string) string {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr: []html.Attribute{
			{Key: "src", Val: src},
			{Key: "style", Val: "width: 100%;"},
		},
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return ""
	}
	return buf.String()
}

// PlainText flattens cue markup to text. Line breaks are kept.
func PlainText(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}
