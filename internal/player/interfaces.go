package player

import (
	"time"

	"github.com/ytget/video-sorter/internal/model"
)

// Engine defines the playback controls the sorter needs from a media engine.
type Engine interface {
	// Load selects the file Play will start; it does not begin playback
	Load(path string) error
	Play() error
	Pause() error
	// Stop halts playback and unloads the file; a later Play starts it over
	Stop() error
	// Seek jumps to an absolute position
	Seek(position time.Duration) error

	Volume() (int, error)
	SetVolume(volume int) error
	Muted() (bool, error)
	SetMute(muted bool) error
	// SetFullscreen toggles fullscreen on the window the engine renders into
	SetFullscreen(on bool) error

	State() (model.PlayerState, error)
	Position() (time.Duration, error)
	Length() (time.Duration, error)

	Close() error
}
