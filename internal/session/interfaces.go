package session

import (
	"time"

	"github.com/ytget/video-sorter/internal/model"
)

// Controller defines the actions the window can trigger. Every method must
// be called from the UI goroutine.
type Controller interface {
	SetUpdateCallback(func(model.Snapshot))
	Snapshot() model.Snapshot

	LoadFolder(dir string) error
	RecentFolders() []string
	BrowseStart() string

	PlayCurrent() error
	TogglePlay() error
	Replay() error
	SkipForward() error
	SkipForwardLong() error
	SkipBackward() error

	Next() error
	Previous() error
	RandomVideo() error
	Delete() error

	ToggleRepeat()
	ToggleAutoPlay()
	ToggleRandom()
	ToggleMute() error
	ToggleFullscreen() error
	ExitFullscreen() error
	SetVolume(volume int) error
	SetSkipOffsets(short, long time.Duration)

	// Close cancels pending timers and shuts the engine down
	Close() error
}
