package player

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dexterlb/mpvipc"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/model"
)

// mpv process and IPC constants
const (
	SocketPrefix      = "video-sorter-"
	WindowsPipePrefix = `\\.\pipe\`
	WindowTitle       = "Video File Sorter"

	socketPollInterval = 50 * time.Millisecond
	quitTimeout        = 2 * time.Second
)

// Errors
var (
	ErrNotStarted = errors.New("player not started")
	ErrNoMedia    = errors.New("no media loaded")
)

// ipcConn is the subset of *mpvipc.Connection the player uses
type ipcConn interface {
	Call(arguments ...interface{}) (interface{}, error)
	Get(property string) (interface{}, error)
	Set(property string, value interface{}) error
	Close() error
}

// MPV drives an mpv process over its JSON IPC socket. mpv opens its own
// video window; --keep-open holds the last frame so the end of a file is
// observable as eof-reached instead of mpv moving on.
type MPV struct {
	binary string
	socket string

	cmd    *exec.Cmd
	exited chan struct{}
	conn   ipcConn

	current string // file selected by Load
	loaded  bool   // current has been handed to mpv since the last Stop
}

// NewMPV creates a player for the given mpv executable
func NewMPV(binary string) *MPV {
	return &MPV{
		binary: binary,
		socket: SocketPath(),
	}
}

// SocketPath returns a unique IPC endpoint for this process
func SocketPath() string {
	name := SocketPrefix + uuid.NewString()
	if runtime.GOOS == "windows" {
		return WindowsPipePrefix + name
	}
	return filepath.Join(os.TempDir(), name+".sock")
}

// Args returns the mpv command line
func (m *MPV) Args() []string {
	return []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--no-terminal",
		"--title=" + WindowTitle,
		"--input-ipc-server=" + m.socket,
	}
}

// Start launches mpv and waits until its IPC socket accepts connections or
// ctx is done.
func (m *MPV) Start(ctx context.Context) error {
	if m.conn != nil {
		return nil
	}

	cmd := exec.Command(m.binary, m.Args()...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %s", m.binary)
	}
	m.cmd = cmd
	m.exited = make(chan struct{})
	go func() {
		err := cmd.Wait()
		zlog.Debug().Err(err).Msg("mpv exited")
		close(m.exited)
	}()

	ticker := time.NewTicker(socketPollInterval)
	defer ticker.Stop()
	for {
		conn := mpvipc.NewConnection(m.socket)
		if err := conn.Open(); err == nil {
			m.conn = conn
			zlog.Info().Str("socket", m.socket).Msg("mpv ready")
			return nil
		}

		select {
		case <-ctx.Done():
			m.kill()
			return errors.Wrap(ctx.Err(), "mpv ipc socket not ready")
		case <-m.exited:
			return errors.Newf("%s exited before accepting commands", m.binary)
		case <-ticker.C:
		}
	}
}

// Load selects path for the next Play
func (m *MPV) Load(path string) error {
	if path == "" {
		return ErrNoMedia
	}
	m.current = path
	m.loaded = false
	return nil
}

// Play starts the selected file, or resumes it when paused
func (m *MPV) Play() error {
	if m.conn == nil {
		return ErrNotStarted
	}
	if m.current == "" {
		return ErrNoMedia
	}
	if !m.loaded {
		if _, err := m.conn.Call("loadfile", m.current, "replace"); err != nil {
			return errors.Wrapf(err, "loadfile %s", filepath.Base(m.current))
		}
		m.loaded = true
	}
	return m.set("pause", false)
}

// Pause pauses playback
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Stop stops playback; mpv forgets the file so Play reloads it
func (m *MPV) Stop() error {
	if m.conn == nil {
		return nil
	}
	m.loaded = false
	if _, err := m.conn.Call("stop"); err != nil {
		return errors.Wrap(err, "stop")
	}
	return nil
}

// Seek jumps to an absolute position
func (m *MPV) Seek(position time.Duration) error {
	if m.conn == nil {
		return ErrNotStarted
	}
	if position < 0 {
		position = 0
	}
	if _, err := m.conn.Call("seek", position.Seconds(), "absolute"); err != nil {
		return errors.Wrap(err, "seek")
	}
	return nil
}

// Volume returns the volume in percent
func (m *MPV) Volume() (int, error) {
	v, err := m.getFloat("volume")
	if err != nil {
		return 0, err
	}
	return int(math.Round(v)), nil
}

// SetVolume sets the volume in percent
func (m *MPV) SetVolume(volume int) error {
	return m.set("volume", float64(volume))
}

// Muted reports whether audio is muted
func (m *MPV) Muted() (bool, error) {
	return m.getBool("mute")
}

// SetMute mutes or unmutes audio
func (m *MPV) SetMute(muted bool) error {
	return m.set("mute", muted)
}

// SetFullscreen switches the video window in or out of fullscreen
func (m *MPV) SetFullscreen(on bool) error {
	return m.set("fullscreen", on)
}

// State maps mpv properties onto a PlayerState
func (m *MPV) State() (model.PlayerState, error) {
	if m.conn == nil || m.current == "" {
		return model.PlayerStateIdle, nil
	}
	if !m.loaded {
		return model.PlayerStateStopped, nil
	}

	idle, err := m.getBool("idle-active")
	if err != nil {
		return model.PlayerStateError, err
	}
	if idle {
		return model.PlayerStateStopped, nil
	}

	if eof, err := m.getBool("eof-reached"); err == nil && eof {
		return model.PlayerStateEnded, nil
	}

	// time-pos is unavailable until the file is opened
	if _, err := m.conn.Get("time-pos"); err != nil {
		return model.PlayerStateOpening, nil
	}

	paused, err := m.getBool("pause")
	if err != nil {
		return model.PlayerStateError, err
	}
	if paused {
		return model.PlayerStatePaused, nil
	}
	return model.PlayerStatePlaying, nil
}

// Position returns the playback position
func (m *MPV) Position() (time.Duration, error) {
	return m.getDuration("time-pos")
}

// Length returns the duration of the current file
func (m *MPV) Length() (time.Duration, error) {
	return m.getDuration("duration")
}

// Close asks mpv to quit and cleans up the socket
func (m *MPV) Close() error {
	if m.conn != nil {
		_, _ = m.conn.Call("quit")
		_ = m.conn.Close()
		m.conn = nil
	}

	if m.exited != nil {
		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			m.kill()
		}
	}

	if runtime.GOOS != "windows" {
		if err := os.Remove(m.socket); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "remove ipc socket")
		}
	}
	return nil
}

func (m *MPV) kill() {
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
}

func (m *MPV) set(property string, value interface{}) error {
	if m.conn == nil {
		return ErrNotStarted
	}
	if err := m.conn.Set(property, value); err != nil {
		return errors.Wrapf(err, "set %s", property)
	}
	return nil
}

func (m *MPV) getBool(property string) (bool, error) {
	if m.conn == nil {
		return false, ErrNotStarted
	}
	v, err := m.conn.Get(property)
	if err != nil {
		return false, errors.Wrapf(err, "get %s", property)
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Newf("property %s: unexpected value %v", property, v)
	}
	return b, nil
}

func (m *MPV) getFloat(property string) (float64, error) {
	if m.conn == nil {
		return 0, ErrNotStarted
	}
	v, err := m.conn.Get(property)
	if err != nil {
		return 0, errors.Wrapf(err, "get %s", property)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, errors.Newf("property %s: unexpected value %v", property, v)
}

func (m *MPV) getDuration(property string) (time.Duration, error) {
	sec, err := m.getFloat(property)
	if err != nil {
		return 0, err
	}
	return time.Duration(sec * float64(time.Second)), nil
}
