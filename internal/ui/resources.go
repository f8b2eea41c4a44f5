package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIconPath is an optional icon file looked up next to the working directory
const AppIconPath = "video-sorter.png"

// LoadAppIcon returns the icon file when present and the theme's video icon
// otherwise
func LoadAppIcon() fyne.Resource {
	if res, err := fyne.LoadResourceFromPath(AppIconPath); err == nil {
		return res
	}
	return theme.MediaVideoIcon()
}
