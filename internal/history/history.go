// Package history keeps the list of recently opened folders in a plain text
// file, one path per line, most recent first. I/O failures are logged at
// debug level and otherwise ignored: history is a convenience.
package history

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/platform"
)

// DefaultLimit is how many folders are remembered
const DefaultLimit = 10

// Store is the in-memory copy of the history file
type Store struct {
	path    string
	limit   int
	folders []string
}

// New creates a store backed by path and loads it
func New(path string) *Store {
	s := &Store{path: path, limit: DefaultLimit}
	s.Load()
	return s
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the file contents
func (s *Store) Load() {
	s.folders = nil
	if s.path == "" {
		return
	}

	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zlog.Debug().Err(err).Str("path", s.path).Msg("history: read failed")
		}
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.folders = append(s.folders, line)
	}
	if err := scanner.Err(); err != nil {
		zlog.Debug().Err(err).Str("path", s.path).Msg("history: scan failed")
	}
}

// Add moves folder to the front, trims the list to the limit and saves it
func (s *Store) Add(folder string) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return
	}

	next := make([]string, 0, len(s.folders)+1)
	next = append(next, folder)
	for _, f := range s.folders {
		if f != folder {
			next = append(next, f)
		}
	}
	if len(next) > s.limit {
		next = next[:s.limit]
	}
	s.folders = next
	s.save()
}

// Folders returns a copy of the remembered folders, most recent first
func (s *Store) Folders() []string {
	return append([]string(nil), s.folders...)
}

// Existing returns the remembered folders that are still directories
func (s *Store) Existing() []string {
	var out []string
	for _, f := range s.folders {
		if platform.DirExists(f) {
			out = append(out, f)
		}
	}
	return out
}

// Latest returns the directory a folder browser should start in: the most
// recent folder, or its parent when that folder is gone. Empty if unknown.
func (s *Store) Latest() string {
	if len(s.folders) == 0 {
		return ""
	}
	latest := s.folders[0]
	if platform.DirExists(latest) {
		return latest
	}
	parent := filepath.Dir(latest)
	if platform.DirExists(parent) {
		return parent
	}
	return ""
}

func (s *Store) save() {
	if s.path == "" {
		return
	}

	var b strings.Builder
	for _, f := range s.folders {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		zlog.Debug().Err(err).Str("path", s.path).Msg("history: write failed")
	}
}
