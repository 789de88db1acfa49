package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Subtitle colors
const (
	ColorNameSubtitleText       fyne.ThemeColorName = "subtitleText"
	ColorNameSubtitleBackground fyne.ThemeColorName = "subtitleBackground"
	ColorNameVideoBackground    fyne.ThemeColorName = "videoBackground"
	ColorNameControlBar         fyne.ThemeColorName = "controlBar"
)

// SubtitleTheme is a compact theme with the colors used by the overlay
type SubtitleTheme struct{}

// NewSubtitleTheme creates a new subtitle theme
func NewSubtitleTheme() fyne.Theme {
	return &SubtitleTheme{}
}

// Color returns theme colors
func (t *SubtitleTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNameSubtitleText:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case ColorNameSubtitleBackground:
		return color.RGBA{R: 0, G: 0, B: 0, A: 204} // 80% black
	case ColorNameVideoBackground:
		return color.RGBA{R: 16, G: 16, B: 16, A: 255}
	case ColorNameControlBar:
		return color.RGBA{R: 0, G: 0, B: 0, A: 140}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *SubtitleTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *SubtitleTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *SubtitleTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}

// subtitleColor looks a color up in the current theme, falling back to
// SubtitleTheme when the app runs with another theme
func subtitleColor(name fyne.ThemeColorName) color.Color {
	app := fyne.CurrentApp()
	if app == nil {
		return (&SubtitleTheme{}).Color(name, theme.VariantDark)
	}
	settings := app.Settings()
	if _, ok := settings.Theme().(*SubtitleTheme); ok {
		return settings.Theme().Color(name, settings.ThemeVariant())
	}
	return (&SubtitleTheme{}).Color(name, settings.ThemeVariant())
}
