package region

import (
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Length is a css length in pixels or percent
type Length struct {
	Value   float32
	Percent bool
}

// Resolve returns the length in pixels relative to total
func (l Length) Resolve(total float32) float32 {
	if l.Percent {
		return total * l.Value / 100
	}
	return l.Value
}

// Style is the subset of an inline region style that affects placement
type Style struct {
	Top, Right, Bottom, Left *Length
	Width, Height            *Length
	LineHeight               *Length
	Position                 string
}

// ParseStyle reads the placement declarations of an inline style. Unknown
// properties and malformed values are skipped.
func ParseStyle(style string) Style {
	var out Style
	s := scanner.New(style)

	var property string
	var value []*scanner.Token
	inValue := false

	flush := func() {
		if property != "" {
			out.set(property, value)
		}
		property, value, inValue = "", nil, false
	}

	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			flush()
			return out
		case scanner.TokenS, scanner.TokenComment:
			continue
		case scanner.TokenChar:
			switch {
			case tok.Value == ";":
				flush()
				continue
			case tok.Value == ":" && !inValue:
				inValue = true
				continue
			}
		}

		if inValue {
			value = append(value, tok)
		} else if tok.Type == scanner.TokenIdent {
			property = strings.ToLower(tok.Value)
		}
	}
}

func (s *Style) set(property string, value []*scanner.Token) {
	if property == "position" {
		if len(value) > 0 && value[0].Type == scanner.TokenIdent {
			s.Position = strings.ToLower(value[0].Value)
		}
		return
	}

	l, ok := parseLength(value)
	if !ok {
		return
	}
	switch property {
	case "top":
		s.Top = &l
	case "right":
		s.Right = &l
	case "bottom":
		s.Bottom = &l
	case "left":
		s.Left = &l
	case "width":
		s.Width = &l
	case "height":
		s.Height = &l
	case "line-height":
		s.LineHeight = &l
	}
}

func parseLength(value []*scanner.Token) (Length, bool) {
	sign := float32(1)
	for _, tok := range value {
		switch tok.Type {
		case scanner.TokenChar:
			if tok.Value == "-" {
				sign = -sign
				continue
			}
			return Length{}, false
		case scanner.TokenPercentage:
			v, err := strconv.ParseFloat(strings.TrimSuffix(tok.Value, "%"), 32)
			if err != nil {
				return Length{}, false
			}
			return Length{Value: sign * float32(v), Percent: true}, true
		case scanner.TokenDimension:
			num := strings.TrimRightFunc(tok.Value, func(r rune) bool {
				return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
			})
			unit := strings.ToLower(tok.Value[len(num):])
			if unit != "px" {
				return Length{}, false
			}
			v, err := strconv.ParseFloat(num, 32)
			if err != nil {
				return Length{}, false
			}
			return Length{Value: sign * float32(v)}, true
		case scanner.TokenNumber:
			v, err := strconv.ParseFloat(tok.Value, 32)
			if err != nil {
				return Length{}, false
			}
			return Length{Value: sign * float32(v)}, true
		default:
			return Length{}, false
		}
	}
	return Length{}, false
}

// Rect places a box of the given content size inside the overlay according to
// the style. Missing horizontal placement spans the overlay width; missing
// vertical placement anchors the box to the bottom edge.
func (s Style) Rect(overlay model.Size, content model.Size) model.Rect {
	r := model.Rect{Width: overlay.Width, Height: content.Height}

	if s.Width != nil {
		r.Width = s.Width.Resolve(overlay.Width)
	}
	if s.Height != nil {
		r.Height = s.Height.Resolve(overlay.Height)
	}

	switch {
	case s.Left != nil:
		r.X = s.Left.Resolve(overlay.Width)
		if s.Right != nil && s.Width == nil {
			r.Width = overlay.Width - r.X - s.Right.Resolve(overlay.Width)
		}
	case s.Right != nil:
		r.X = overlay.Width - s.Right.Resolve(overlay.Width) - r.Width
	}

	switch {
	case s.Top != nil:
		r.Y = s.Top.Resolve(overlay.Height)
		if s.Bottom != nil && s.Height == nil {
			r.Height = overlay.Height - r.Y - s.Bottom.Resolve(overlay.Height)
		}
	case s.Bottom != nil:
		r.Y = overlay.Height - s.Bottom.Resolve(overlay.Height) - r.Height
	default:
		r.Y = overlay.Height - r.Height
	}
	return r
}
