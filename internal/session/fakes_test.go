package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ytget/video-sorter/internal/model"
)

// fakeEngine is an in-memory player that switches state synchronously
type fakeEngine struct {
	state  model.PlayerState
	stuck  bool // Play leaves the engine opening forever
	loaded string
	pos    time.Duration
	length time.Duration
	volume int
	muted  bool
	closed bool

	fullscreen bool

	loadErr error
	playErr error

	calls []string
	seeks []time.Duration
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{state: model.PlayerStateIdle}
}

func (e *fakeEngine) Load(path string) error {
	e.calls = append(e.calls, "load:"+filepath.Base(path))
	if e.loadErr != nil {
		return e.loadErr
	}
	e.loaded = path
	e.state = model.PlayerStateStopped
	return nil
}

func (e *fakeEngine) Play() error {
	e.calls = append(e.calls, "play")
	if e.playErr != nil {
		return e.playErr
	}
	if e.stuck {
		e.state = model.PlayerStateOpening
	} else {
		e.state = model.PlayerStatePlaying
	}
	return nil
}

func (e *fakeEngine) Pause() error {
	e.calls = append(e.calls, "pause")
	e.state = model.PlayerStatePaused
	return nil
}

func (e *fakeEngine) Stop() error {
	e.calls = append(e.calls, "stop")
	e.state = model.PlayerStateStopped
	return nil
}

func (e *fakeEngine) Seek(position time.Duration) error {
	e.seeks = append(e.seeks, position)
	e.pos = position
	return nil
}

func (e *fakeEngine) Volume() (int, error) { return e.volume, nil }

func (e *fakeEngine) SetVolume(volume int) error {
	e.calls = append(e.calls, fmt.Sprintf("volume:%d", volume))
	e.volume = volume
	return nil
}

func (e *fakeEngine) Muted() (bool, error) { return e.muted, nil }

func (e *fakeEngine) SetMute(muted bool) error {
	e.calls = append(e.calls, fmt.Sprintf("mute:%t", muted))
	e.muted = muted
	return nil
}

func (e *fakeEngine) SetFullscreen(on bool) error {
	e.calls = append(e.calls, fmt.Sprintf("fullscreen:%t", on))
	e.fullscreen = on
	return nil
}

func (e *fakeEngine) State() (model.PlayerState, error) { return e.state, nil }
func (e *fakeEngine) Position() (time.Duration, error) { return e.pos, nil }
func (e *fakeEngine) Length() (time.Duration, error) { return e.length, nil }

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

// manualScheduler runs callbacks only when the test advances its clock
type manualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	seq       int
	f         func()
	cancelled bool
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) func() {
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Advance runs every timer due within d, including ones scheduled on the way
func (m *manualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		live := m.timers[:0]
		for _, t := range m.timers {
			if !t.cancelled {
				live = append(live, t)
			}
		}
		m.timers = live
		sort.SliceStable(m.timers, func(i, j int) bool {
			if m.timers[i].at != m.timers[j].at {
				return m.timers[i].at < m.timers[j].at
			}
			return m.timers[i].seq < m.timers[j].seq
		})
		if len(m.timers) == 0 || m.timers[0].at > target {
			break
		}
		next := m.timers[0]
		m.timers = m.timers[1:]
		m.now = next.at
		next.f()
	}
	m.now = target
}

// Pending counts timers that have neither fired nor been cancelled
func (m *manualScheduler) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// makeVideos creates empty files in a temp dir and returns the dir
func makeVideos(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}
