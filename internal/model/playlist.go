package model

import (
	"math/rand/v2"
	"path/filepath"
)

// NoCursor is the cursor value of an empty playlist
const NoCursor = -1

// Playlist is the ordered list of video files from one folder and the
// position of the file currently selected.
//
// Cursor is NoCursor iff Files is empty, otherwise 0 <= Cursor < len(Files).
type Playlist struct {
	Folder string
	Files  []string
	Cursor int
}

// NewPlaylist creates a playlist positioned on the first file
func NewPlaylist(folder string, files []string) *Playlist {
	p := &Playlist{
		Folder: folder,
		Files:  files,
		Cursor: NoCursor,
	}
	if len(files) > 0 {
		p.Cursor = 0
	}
	return p
}

// Len returns the number of files
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Files)
}

// IsEmpty reports whether there is nothing to play
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}

// Current returns the selected file path
func (p *Playlist) Current() (string, bool) {
	if p.IsEmpty() || p.Cursor < 0 || p.Cursor >= len(p.Files) {
		return "", false
	}
	return p.Files[p.Cursor], true
}

// CurrentName returns the base name of the selected file, or "" if none
func (p *Playlist) CurrentName() string {
	path, ok := p.Current()
	if !ok {
		return ""
	}
	return filepath.Base(path)
}

// Position returns the 1-based position of the cursor and the total count
func (p *Playlist) Position() (int, int) {
	if p.IsEmpty() {
		return 0, 0
	}
	return p.Cursor + 1, len(p.Files)
}

// Next advances the cursor, wrapping past the last file to the first
func (p *Playlist) Next() bool {
	if p.IsEmpty() {
		return false
	}
	p.Cursor = (p.Cursor + 1) % len(p.Files)
	return true
}

// Previous moves the cursor back, wrapping before the first file to the last
func (p *Playlist) Previous() bool {
	if p.IsEmpty() {
		return false
	}
	n := len(p.Files)
	p.Cursor = ((p.Cursor-1)%n + n) % n
	return true
}

// Shuffle moves the cursor to a uniformly chosen file other than the current
// one. It does nothing and returns false when fewer than two files remain.
func (p *Playlist) Shuffle(r *rand.Rand) bool {
	n := p.Len()
	if n <= 1 {
		return false
	}
	idx := r.IntN(n - 1)
	if idx >= p.Cursor {
		idx++
	}
	p.Cursor = idx
	return true
}

// RemoveCurrent drops the selected file from the list and clamps the cursor so
// that the file after the removed one becomes current, or the new last file
// when the removed one was last.
func (p *Playlist) RemoveCurrent() (string, bool) {
	path, ok := p.Current()
	if !ok {
		return "", false
	}

	p.Files = append(p.Files[:p.Cursor], p.Files[p.Cursor+1:]...)
	switch {
	case len(p.Files) == 0:
		p.Cursor = NoCursor
	case p.Cursor >= len(p.Files):
		p.Cursor = len(p.Files) - 1
	}
	return path, true
}
