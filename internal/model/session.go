package model

import (
	"fmt"
	"time"
)

// ClockPlaceholder is shown while nothing is playing
const ClockPlaceholder = "00:00 / 00:00"

// Modes holds the user toggles that shape navigation and audio
type Modes struct {
	Repeat     bool // replay the current file when it ends
	AutoPlay   bool // advance when the current file ends
	Random     bool // next/previous/auto-advance pick a random file
	Muted      bool
	Fullscreen bool // engine video window fills the screen
}

// StatusKind identifies which status message to show
type StatusKind string

const (
	StatusNoFolder StatusKind = "no_folder"
	StatusNoVideos StatusKind = "no_videos"
	StatusFound    StatusKind = "found"
	StatusPlaying  StatusKind = "playing"
	StatusDeleted  StatusKind = "deleted"
	StatusNoneLeft StatusKind = "none_left"
	StatusError    StatusKind = "error"
)

// Status is a status-bar message with the values needed to render it
type Status struct {
	Kind  StatusKind
	Count int    // files found
	Index int    // 1-based position being played
	Total int    // files in the playlist
	Name  string // deleted file name
	Err   string // error text for StatusError
}

// Snapshot is everything the window renders for the current session
type Snapshot struct {
	Title     string // current file name, "" when nothing is loaded
	Current   string // current file path
	Status    Status
	Clock     string
	Modes     Modes
	Volume    int
	HasVideos bool
}

// FormatClock formats a duration as MM:SS; minutes are not wrapped into hours
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ClockLabel renders "elapsed / total"
func ClockLabel(position, length time.Duration) string {
	return FormatClock(position) + " / " + FormatClock(length)
}
