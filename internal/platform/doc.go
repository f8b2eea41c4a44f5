package platform

// Package platform contains OS integration: scanning a folder for videos,
// deleting files, locating the history file and revealing files in the
// system file manager.
