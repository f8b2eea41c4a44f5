package platform

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// HistoryFileName is the recent-folders file kept in the user's home directory
const HistoryFileName = ".video_sorter_history"

// VideoExtensions lists the file extensions treated as videos
var VideoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v"}

// IsVideoFile reports whether name has a known video extension and is not a dot file
func IsVideoFile(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// ScanVideos returns the video files directly inside folder, sorted by name.
// Subdirectories are not descended into.
func ScanVideos(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "read folder %s", folder)
	}

	var videos []string
	for _, entry := range entries {
		if !IsVideoFile(entry.Name()) {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		// Follow symlinks so linked videos count as regular files
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		videos = append(videos, path)
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return strings.ToLower(filepath.Base(videos[i])) < strings.ToLower(filepath.Base(videos[j]))
	})
	return videos, nil
}

// DeleteFile permanently removes the file at path
func DeleteFile(path string) error {
	if path == "" {
		return errors.New("file path is empty")
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "delete %s", filepath.Base(path))
	}
	return nil
}

// DirExists reports whether path is an existing directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HistoryFilePath returns the location of the recent-folders file
func HistoryFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, HistoryFileName), nil
}
