package player

// Package player wraps the external media engine that decodes and renders
// video. The sorter only talks to it through Engine; MPV is the production
// implementation, controlled over mpv's JSON IPC socket.
