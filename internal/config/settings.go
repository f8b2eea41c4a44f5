package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyVolume    = "volume"
	KeySkipShort = "skip_short_seconds"
	KeySkipLong  = "skip_long_seconds"
	KeyMPVBinary = "mpv_binary"
	KeyLanguage  = "app_language"
)

// Default values
const (
	DefaultVolume    = 70
	DefaultSkipShort = 15
	DefaultSkipLong  = 45
	DefaultMPVBinary = "mpv"
	DefaultLanguage  = "system"

	MaxVolume  = 100
	MaxSkipSec = 600
)

// Settings manages persistent user preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetVolume returns the last used volume (0-100)
func (s *Settings) GetVolume() int {
	return s.app.Preferences().IntWithFallback(KeyVolume, DefaultVolume)
}

// SetVolume stores the volume, clamped to 0-100
func (s *Settings) SetVolume(volume int) {
	s.app.Preferences().SetInt(KeyVolume, clamp(volume, 0, MaxVolume))
}

// GetSkipShort returns the short skip offset used by the arrow keys
func (s *Settings) GetSkipShort() time.Duration {
	return s.skip(KeySkipShort, DefaultSkipShort)
}

// SetSkipShort sets the short skip offset in seconds
func (s *Settings) SetSkipShort(seconds int) {
	s.app.Preferences().SetInt(KeySkipShort, clamp(seconds, 1, MaxSkipSec))
}

// GetSkipLong returns the long forward skip offset
func (s *Settings) GetSkipLong() time.Duration {
	return s.skip(KeySkipLong, DefaultSkipLong)
}

// SetSkipLong sets the long skip offset in seconds
func (s *Settings) SetSkipLong(seconds int) {
	s.app.Preferences().SetInt(KeySkipLong, clamp(seconds, 1, MaxSkipSec))
}

// GetMPVBinary returns the mpv executable name or path
func (s *Settings) GetMPVBinary() string {
	bin := s.app.Preferences().String(KeyMPVBinary)
	if bin == "" {
		return DefaultMPVBinary
	}
	return bin
}

// SetMPVBinary sets the mpv executable; empty resets to the default
func (s *Settings) SetMPVBinary(bin string) {
	if bin == "" {
		bin = DefaultMPVBinary
	}
	s.app.Preferences().SetString(KeyMPVBinary, bin)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func (s *Settings) skip(key string, fallback int) time.Duration {
	sec := s.app.Preferences().IntWithFallback(key, fallback)
	if sec <= 0 {
		sec = fallback
	}
	return time.Duration(sec) * time.Second
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
