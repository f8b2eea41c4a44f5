package session

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/video-sorter/internal/history"
	"github.com/ytget/video-sorter/internal/model"
)

type fixture struct {
	svc     *Service
	engine  *fakeEngine
	sched   *manualScheduler
	history *history.Store
	updates int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		engine:  newFakeEngine(),
		sched:   &manualScheduler{},
		history: history.New(filepath.Join(t.TempDir(), "history")),
	}
	f.svc = NewService(f.engine, f.history, f.sched, Config{
		Volume: 70,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	})
	f.svc.SetUpdateCallback(func(model.Snapshot) { f.updates++ })
	return f
}

// ready lets the readiness check and the delayed unmute run
func (f *fixture) ready() {
	f.sched.Advance(ReadyCheckInterval + AudioRestoreDelay)
}

func TestNewService_InitialSnapshot(t *testing.T) {
	f := newFixture(t)
	snap := f.svc.Snapshot()

	assert.Equal(t, model.StatusNoFolder, snap.Status.Kind)
	assert.Equal(t, model.ClockPlaceholder, snap.Clock)
	assert.Equal(t, 70, snap.Volume)
	assert.False(t, snap.HasVideos)
	assert.Empty(t, snap.Title)
}

func TestLoadFolder_PlaysFirstVideo(t *testing.T) {
	f := newFixture(t)
	dir := makeVideos(t, "b.mp4", "A.mkv", "notes.txt")

	require.NoError(t, f.svc.LoadFolder(dir))

	snap := f.svc.Snapshot()
	assert.Equal(t, "A.mkv", snap.Title)
	assert.Equal(t, filepath.Join(dir, "A.mkv"), snap.Current)
	assert.Equal(t, model.Status{Kind: model.StatusPlaying, Index: 1, Total: 2}, snap.Status)
	assert.True(t, snap.HasVideos)
	assert.Equal(t, []string{"mute:true", "stop", "load:A.mkv", "volume:70", "play"}, f.engine.calls)
	assert.True(t, f.engine.muted)
	assert.Positive(t, f.updates)

	f.ready()
	assert.False(t, f.engine.muted)
	assert.Equal(t, []string{dir}, f.svc.RecentFolders())
	assert.Equal(t, dir, f.svc.BrowseStart())
}

func TestLoadFolder_Empty(t *testing.T) {
	f := newFixture(t)
	previous := makeVideos(t, "a.mp4", "b.mp4")
	require.NoError(t, f.svc.LoadFolder(previous))
	f.ready()
	f.engine.calls = nil

	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "readme.md")))

	snap := f.svc.Snapshot()
	assert.Equal(t, model.StatusNoVideos, snap.Status.Kind)
	assert.False(t, snap.HasVideos)
	assert.Empty(t, snap.Current)
	assert.Empty(t, f.engine.calls)

	require.NoError(t, f.svc.Delete())
	require.NoError(t, f.svc.Next())
	require.NoError(t, f.svc.Previous())
	assert.Empty(t, f.engine.calls)
	assert.FileExists(t, filepath.Join(previous, "a.mp4"))
	assert.FileExists(t, filepath.Join(previous, "b.mp4"))
}

func TestPlayCurrent_FailureRestoresAudio(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *fakeEngine)
	}{
		{"load", func(e *fakeEngine) { e.loadErr = errors.New("no such file") }},
		{"play", func(e *fakeEngine) { e.playErr = errors.New("decoder failed") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f.engine)

			require.Error(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))

			snap := f.svc.Snapshot()
			assert.Equal(t, model.StatusError, snap.Status.Kind)
			assert.False(t, snap.Modes.Muted)
			assert.False(t, f.engine.muted)
		})
	}
}

func TestLoadFolder_Missing(t *testing.T) {
	f := newFixture(t)

	err := f.svc.LoadFolder(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)

	snap := f.svc.Snapshot()
	assert.Equal(t, model.StatusError, snap.Status.Kind)
	assert.NotEmpty(t, snap.Status.Err)
	assert.Empty(t, f.engine.calls)
}

func TestLoadFolder_ReplacesPlaylist(t *testing.T) {
	f := newFixture(t)
	first := makeVideos(t, "a.mp4", "b.mp4", "c.mp4")
	second := makeVideos(t, "z.webm")

	require.NoError(t, f.svc.LoadFolder(first))
	require.NoError(t, f.svc.Next())
	require.NoError(t, f.svc.LoadFolder(second))

	assert.Equal(t, "z.webm", f.svc.Snapshot().Title)
	assert.Equal(t, 1, f.svc.Playlist().Len())
	assert.Equal(t, []string{second, first}, f.svc.RecentFolders())
}

func TestNextPrevious_Wrap(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4", "c.mp4")))

	require.NoError(t, f.svc.Previous())
	assert.Equal(t, "c.mp4", f.svc.Snapshot().Title)
	assert.Equal(t, 3, f.svc.Snapshot().Status.Index)

	require.NoError(t, f.svc.Next())
	assert.Equal(t, "a.mp4", f.svc.Snapshot().Title)

	require.NoError(t, f.svc.Next())
	assert.Equal(t, "b.mp4", f.svc.Snapshot().Title)
}

func TestNavigation_NoPlaylist(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.svc.Next())
	assert.NoError(t, f.svc.Previous())
	assert.NoError(t, f.svc.RandomVideo())
	assert.NoError(t, f.svc.Delete())
	assert.NoError(t, f.svc.Replay())
	assert.NoError(t, f.svc.TogglePlay())
	assert.Empty(t, f.engine.calls)
}

func TestRandomMode_NeverRepeatsCurrent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4", "c.mp4", "d.mp4")))
	f.svc.ToggleRandom()
	assert.True(t, f.svc.Snapshot().Modes.Random)

	prev := f.svc.Snapshot().Title
	seen := map[string]bool{prev: true}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			require.NoError(t, f.svc.Next())
		} else {
			require.NoError(t, f.svc.Previous())
		}
		cur := f.svc.Snapshot().Title
		require.NotEqual(t, prev, cur)
		seen[cur] = true
		prev = cur
	}
	assert.Len(t, seen, 4)
}

func TestRandomVideo_SingleFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "only.mp4")))
	f.engine.calls = nil

	require.NoError(t, f.svc.RandomVideo())
	assert.Empty(t, f.engine.calls)
	assert.Equal(t, "only.mp4", f.svc.Snapshot().Title)
}

func TestDelete_Middle(t *testing.T) {
	f := newFixture(t)
	dir := makeVideos(t, "a.mp4", "b.mp4", "c.mp4")
	require.NoError(t, f.svc.LoadFolder(dir))
	require.NoError(t, f.svc.Next())

	require.NoError(t, f.svc.Delete())

	_, err := os.Stat(filepath.Join(dir, "b.mp4"))
	assert.True(t, os.IsNotExist(err))

	snap := f.svc.Snapshot()
	assert.Equal(t, "c.mp4", snap.Title)
	assert.Equal(t, model.Status{Kind: model.StatusDeleted, Name: "b.mp4", Index: 2, Total: 2}, snap.Status)
	assert.Equal(t, "load:c.mp4", f.engine.calls[len(f.engine.calls)-3])
}

func TestDelete_LastInList(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4")))
	require.NoError(t, f.svc.Previous())

	require.NoError(t, f.svc.Delete())

	snap := f.svc.Snapshot()
	assert.Equal(t, "a.mp4", snap.Title)
	assert.Equal(t, 1, snap.Status.Index)
	assert.Equal(t, 1, snap.Status.Total)
}

func TestDelete_OnlyFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()

	require.NoError(t, f.svc.Delete())

	snap := f.svc.Snapshot()
	assert.Equal(t, model.StatusNoneLeft, snap.Status.Kind)
	assert.Empty(t, snap.Title)
	assert.Equal(t, model.ClockPlaceholder, snap.Clock)
	assert.False(t, snap.HasVideos)
	assert.Equal(t, 0, f.sched.Pending())
}

func TestDelete_Failure(t *testing.T) {
	f := newFixture(t)
	dir := makeVideos(t, "a.mp4", "b.mp4")
	require.NoError(t, f.svc.LoadFolder(dir))
	require.NoError(t, os.Remove(filepath.Join(dir, "a.mp4")))

	err := f.svc.Delete()
	require.Error(t, err)

	snap := f.svc.Snapshot()
	assert.Equal(t, model.StatusError, snap.Status.Kind)
	assert.Contains(t, snap.Status.Err, "a.mp4")
	assert.Equal(t, 2, f.svc.Playlist().Len())
	assert.Equal(t, "a.mp4", snap.Title)
}

func TestMute_PreservedAcrossLoad(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.ToggleMute())
	assert.True(t, f.svc.Snapshot().Modes.Muted)

	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()
	assert.True(t, f.engine.muted)

	require.NoError(t, f.svc.ToggleMute())
	assert.False(t, f.engine.muted)
}

func TestTick_UpdatesClock(t *testing.T) {
	f := newFixture(t)
	f.engine.length = 90 * time.Second
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()

	assert.Equal(t, "00:00 / 01:30", f.svc.Snapshot().Clock)

	f.engine.pos = 12 * time.Second
	f.sched.Advance(PollInterval)
	assert.Equal(t, "00:12 / 01:30", f.svc.Snapshot().Clock)
}

func TestTick_UnknownLengthKeepsPlaceholder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.engine.pos = 5 * time.Second
	f.ready()
	f.sched.Advance(PollInterval)

	assert.Equal(t, model.ClockPlaceholder, f.svc.Snapshot().Clock)
}

func TestEnded_Repeat(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4")))
	f.ready()
	f.svc.ToggleRepeat()

	f.engine.state = model.PlayerStateEnded
	f.engine.pos = 60 * time.Second
	f.sched.Advance(PollInterval + RestartDelay + ReadyCheckInterval)

	assert.Equal(t, "a.mp4", f.svc.Snapshot().Title)
	assert.Equal(t, model.PlayerStatePlaying, f.engine.state)
	assert.Equal(t, []time.Duration{0}, f.engine.seeks)
}

func TestEnded_AutoPlayAdvances(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4")))
	f.ready()
	f.svc.ToggleAutoPlay()

	f.engine.state = model.PlayerStateEnded
	f.sched.Advance(PollInterval)

	snap := f.svc.Snapshot()
	assert.Equal(t, "b.mp4", snap.Title)
	assert.Equal(t, 2, snap.Status.Index)
}

func TestEnded_AutoPlayRandomSingleFileKeepsPolling(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()
	f.svc.ToggleAutoPlay()
	f.svc.ToggleRandom()
	f.engine.calls = nil

	f.engine.state = model.PlayerStateEnded
	f.sched.Advance(3 * PollInterval)

	assert.Empty(t, f.engine.calls)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestEnded_RepeatWinsOverAutoPlay(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4")))
	f.ready()
	f.svc.ToggleRepeat()
	f.svc.ToggleAutoPlay()

	f.engine.state = model.PlayerStateEnded
	f.sched.Advance(PollInterval + RestartDelay + ReadyCheckInterval)

	assert.Equal(t, "a.mp4", f.svc.Snapshot().Title)
}

func TestEnded_NoModeStays(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4", "b.mp4")))
	f.ready()
	f.engine.calls = nil

	f.engine.state = model.PlayerStateEnded
	f.sched.Advance(2 * PollInterval)

	assert.Equal(t, "a.mp4", f.svc.Snapshot().Title)
	assert.Empty(t, f.engine.calls)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestTogglePlay(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()

	require.NoError(t, f.svc.TogglePlay())
	assert.Equal(t, model.PlayerStatePaused, f.engine.state)

	require.NoError(t, f.svc.TogglePlay())
	assert.Equal(t, model.PlayerStatePlaying, f.engine.state)

	f.engine.state = model.PlayerStateEnded
	f.engine.calls = nil
	require.NoError(t, f.svc.TogglePlay())
	assert.Equal(t, []string{"stop"}, f.engine.calls)

	f.sched.Advance(RestartDelay)
	assert.Equal(t, []string{"stop", "play"}, f.engine.calls)
	assert.Equal(t, model.PlayerStatePlaying, f.engine.state)
}

func TestSkip(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()

	f.engine.pos = 10 * time.Second
	require.NoError(t, f.svc.SkipBackward())
	require.NoError(t, f.svc.SkipForward())
	require.NoError(t, f.svc.SkipForwardLong())

	assert.Equal(t, []time.Duration{0, 15 * time.Second, 60 * time.Second}, f.engine.seeks)
}

func TestSkip_IgnoredWhenInactive(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.engine.state = model.PlayerStateStopped

	require.NoError(t, f.svc.SkipForward())
	require.NoError(t, f.svc.SkipBackward())
	assert.Empty(t, f.engine.seeks)
}

func TestSetVolume_Clamps(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.SetVolume(150))
	assert.Equal(t, 100, f.svc.Snapshot().Volume)
	assert.Equal(t, 100, f.engine.volume)

	require.NoError(t, f.svc.SetVolume(-5))
	assert.Equal(t, 0, f.svc.Snapshot().Volume)
	assert.Equal(t, 0, f.engine.volume)
}

func TestReadyTimeout(t *testing.T) {
	f := newFixture(t)
	f.engine.stuck = true
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "slow.mp4")))

	f.sched.Advance(MaxReadyChecks * ReadyCheckInterval)

	snap := f.svc.Snapshot()
	assert.Equal(t, model.StatusError, snap.Status.Kind)
	assert.Equal(t, ErrPlaybackTimeout.Error(), snap.Status.Err)
	assert.False(t, f.engine.muted)
	assert.Equal(t, 1, f.sched.Pending(), "time updates keep running")

	// the file opens late and plays to the end; repeat still applies
	f.engine.pos, f.engine.length = 5*time.Second, 90*time.Second
	f.engine.state = model.PlayerStatePlaying
	f.sched.Advance(PollInterval)
	assert.Equal(t, "00:05 / 01:30", f.svc.Snapshot().Clock)

	f.svc.ToggleRepeat()
	f.engine.stuck = false
	f.engine.state = model.PlayerStateEnded
	f.engine.calls = nil
	f.sched.Advance(PollInterval + RestartDelay)
	assert.Equal(t, []string{"stop", "play"}, f.engine.calls)
}

func TestClose_CancelsTimers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()
	require.Positive(t, f.sched.Pending())

	require.NoError(t, f.svc.Close())
	assert.Equal(t, 0, f.sched.Pending())
	assert.True(t, f.engine.closed)

	// second close is a no-op
	require.NoError(t, f.svc.Close())
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(newFakeEngine(), nil, &manualScheduler{}, Config{Volume: 500})

	assert.Equal(t, DefaultSkipShort, svc.config.SkipShort)
	assert.Equal(t, DefaultSkipLong, svc.config.SkipLong)
	assert.Equal(t, MaxVolume, svc.Snapshot().Volume)
	assert.Nil(t, svc.RecentFolders())
	assert.Empty(t, svc.BrowseStart())
}

func TestSetSkipOffsets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.LoadFolder(makeVideos(t, "a.mp4")))
	f.ready()

	f.svc.SetSkipOffsets(5*time.Second, 0)
	assert.Equal(t, DefaultSkipLong, f.svc.config.SkipLong)

	f.engine.pos = 10 * time.Second
	require.NoError(t, f.svc.SkipForward())
	assert.Equal(t, []time.Duration{15 * time.Second}, f.engine.seeks)
}

func TestFullscreen(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.ExitFullscreen())
	assert.Empty(t, f.engine.calls)

	require.NoError(t, f.svc.ToggleFullscreen())
	assert.True(t, f.engine.fullscreen)
	assert.True(t, f.svc.Snapshot().Modes.Fullscreen)

	require.NoError(t, f.svc.ExitFullscreen())
	assert.False(t, f.engine.fullscreen)
	assert.False(t, f.svc.Snapshot().Modes.Fullscreen)
}
