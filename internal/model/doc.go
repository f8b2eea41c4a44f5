package model

// Package model defines the data the sorter works with: the ordered list of
// video paths and its cursor, the playback mode flags, engine states and the
// status messages shown to the user. Types carry no UI or engine dependencies
// so they can be driven directly from tests.
