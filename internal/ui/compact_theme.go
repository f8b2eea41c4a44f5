package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// VideoBackground fills the area behind the current file name
var VideoBackground = color.Black

// CompactTheme is a dark theme with tight padding so four button rows fit
// under the video area
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color resolves every name against the dark variant
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameError:
		return color.RGBA{R: 211, G: 47, B: 47, A: 255} // delete button
	case theme.ColorNamePrimary:
		return color.RGBA{R: 255, G: 143, B: 0, A: 255} // active mode toggles
	case theme.ColorNameBackground:
		return color.RGBA{R: 24, G: 24, B: 24, A: 255}
	case theme.ColorNameButton:
		return color.RGBA{R: 48, G: 48, B: 48, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 235, G: 235, B: 235, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
