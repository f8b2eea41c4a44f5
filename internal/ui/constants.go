package ui

import "time"

// Icons (symbols)
const (
	IconSettings = "⚙"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	VideoAreaMinHeight float32 = 240
	VolumeSliderWidth  float32 = 140
	TimeLabelWidth     float32 = 120

	FolderDialogWidth  float32 = 500
	FolderDialogHeight float32 = 300

	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 320
)

// Popup behavior
const (
	PopupAutoHide = 3 * time.Second
)
