package model

// PlayerState represents what the external engine is currently doing
type PlayerState string

const (
	// PlayerStateIdle means no file has been loaded yet
	PlayerStateIdle PlayerState = "Idle"

	// PlayerStateOpening means a file is loaded but playback has not started
	PlayerStateOpening PlayerState = "Opening"

	// PlayerStatePlaying means the file is playing
	PlayerStatePlaying PlayerState = "Playing"

	// PlayerStatePaused means playback is paused
	PlayerStatePaused PlayerState = "Paused"

	// PlayerStateEnded means the file reached its end
	PlayerStateEnded PlayerState = "Ended"

	// PlayerStateStopped means playback was stopped and the file unloaded
	PlayerStateStopped PlayerState = "Stopped"

	// PlayerStateError means the engine failed to play the file
	PlayerStateError PlayerState = "Error"
)

// String returns the string representation of PlayerState
func (ps PlayerState) String() string {
	return string(ps)
}

// IsActive returns true when position queries and seeking are meaningful
func (ps PlayerState) IsActive() bool {
	return ps == PlayerStatePlaying || ps == PlayerStatePaused
}
