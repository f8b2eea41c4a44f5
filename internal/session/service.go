package session

import (
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/history"
	"github.com/ytget/video-sorter/internal/model"
	"github.com/ytget/video-sorter/internal/platform"
	"github.com/ytget/video-sorter/internal/player"
)

// Timing of the engine state transitions
const (
	ReadyCheckInterval = 100 * time.Millisecond
	AudioRestoreDelay  = 50 * time.Millisecond
	RestartDelay       = 100 * time.Millisecond
	PollInterval       = 500 * time.Millisecond

	// MaxReadyChecks bounds how long a file may take to start playing
	MaxReadyChecks = 100
)

// Defaults used when Config leaves a field zero
const (
	DefaultSkipShort = 15 * time.Second
	DefaultSkipLong  = 45 * time.Second
	DefaultVolume    = 70
	MaxVolume        = 100
)

// ErrPlaybackTimeout is reported when the engine never reaches a playable state
var ErrPlaybackTimeout = errors.New("playback did not start")

// Config holds service configuration
type Config struct {
	SkipShort time.Duration
	SkipLong  time.Duration
	Volume    int
	Rand      *rand.Rand // source for random navigation; seeded randomly if nil
}

// Service owns the playlist, the mode flags and the engine. It is not safe
// for concurrent use: the UI goroutine calls it and the Scheduler delivers
// timer callbacks back onto that goroutine.
type Service struct {
	engine  player.Engine
	history *history.Store
	sched   Scheduler
	rng     *rand.Rand
	config  Config

	playlist *model.Playlist
	modes    model.Modes
	volume   int
	status   model.Status
	clock    string
	title    string

	// Cancel funcs of the pending timer in each chain
	pending func() // readiness checks and stop-then-play sequences
	audio   func() // delayed unmute
	poll    func() // time display refresh
	polling bool
	closed  bool

	onUpdate func(model.Snapshot)
}

var _ Controller = (*Service)(nil)

// NewService creates a session service. hist may be nil.
func NewService(engine player.Engine, hist *history.Store, sched Scheduler, config Config) *Service {
	if config.SkipShort <= 0 {
		config.SkipShort = DefaultSkipShort
	}
	if config.SkipLong <= 0 {
		config.SkipLong = DefaultSkipLong
	}
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Service{
		engine:   engine,
		history:  hist,
		sched:    sched,
		rng:      config.Rand,
		config:   config,
		playlist: model.NewPlaylist("", nil),
		volume:   clampVolume(config.Volume),
		status:   model.Status{Kind: model.StatusNoFolder},
		clock:    model.ClockPlaceholder,
	}
}

// SetUpdateCallback sets the callback invoked after every visible change
func (s *Service) SetUpdateCallback(callback func(model.Snapshot)) {
	s.onUpdate = callback
}

// Snapshot returns the current render state
func (s *Service) Snapshot() model.Snapshot {
	current, _ := s.playlist.Current()
	return model.Snapshot{
		Title:     s.title,
		Current:   current,
		Status:    s.status,
		Clock:     s.clock,
		Modes:     s.modes,
		Volume:    s.volume,
		HasVideos: !s.playlist.IsEmpty(),
	}
}

// Playlist exposes the current playlist (read-only use)
func (s *Service) Playlist() *model.Playlist {
	return s.playlist
}

// RecentFolders returns remembered folders that still exist
func (s *Service) RecentFolders() []string {
	if s.history == nil {
		return nil
	}
	return s.history.Existing()
}

// BrowseStart returns the directory a folder browser should open in
func (s *Service) BrowseStart() string {
	if s.history == nil {
		return ""
	}
	return s.history.Latest()
}

// LoadFolder remembers dir, scans it and starts playing its first video
func (s *Service) LoadFolder(dir string) error {
	defer s.notify()

	if s.history != nil {
		s.history.Add(dir)
	}

	files, err := platform.ScanVideos(dir)
	if err != nil {
		zlog.Error().Err(err).Str("folder", dir).Msg("scan failed")
		s.fail(err)
		return err
	}
	if len(files) == 0 {
		zlog.Info().Str("folder", dir).Msg("no videos in folder")
		s.playlist = model.NewPlaylist(dir, nil)
		s.status = model.Status{Kind: model.StatusNoVideos}
		return nil
	}

	zlog.Info().Str("folder", dir).Int("count", len(files)).Msg("folder loaded")
	s.playlist = model.NewPlaylist(dir, files)
	s.status = model.Status{Kind: model.StatusFound, Count: len(files)}
	return s.playCurrent()
}

// PlayCurrent loads and plays the file under the cursor
func (s *Service) PlayCurrent() error {
	defer s.notify()
	return s.playCurrent()
}

func (s *Service) playCurrent() error {
	path, ok := s.playlist.Current()
	if !ok {
		return nil
	}

	s.cancel(&s.pending)
	s.cancel(&s.audio)
	s.stopTimeUpdates()
	s.title = s.playlist.CurrentName()
	s.clock = model.ClockPlaceholder

	// Muted while switching so the old file's audio does not leak
	s.warn(s.engine.SetMute(true), "mute before load")
	s.warn(s.engine.Stop(), "stop before load")

	if err := s.engine.Load(path); err != nil {
		s.restoreAudio()
		s.fail(err)
		return err
	}
	s.warn(s.engine.SetVolume(s.volume), "set volume")
	if err := s.engine.Play(); err != nil {
		s.restoreAudio()
		s.fail(err)
		return err
	}

	zlog.Debug().Str("file", path).Msg("playing")
	index, total := s.playlist.Position()
	s.status = model.Status{Kind: model.StatusPlaying, Index: index, Total: total}

	s.whenReady(0, func() {
		s.after(&s.audio, AudioRestoreDelay, s.restoreAudio)
		s.startTimeUpdates()
	})
	return nil
}

// whenReady polls the engine until it is playing or paused, then runs f
func (s *Service) whenReady(attempt int, f func()) {
	s.after(&s.pending, ReadyCheckInterval, func() {
		state, err := s.engine.State()
		if err == nil && state.IsActive() {
			f()
			return
		}
		if attempt+1 >= MaxReadyChecks {
			zlog.Warn().Str("state", state.String()).Msg("engine never became ready")
			s.restoreAudio()
			s.fail(ErrPlaybackTimeout)
			// keep watching in case the file starts late
			s.startTimeUpdates()
			s.notify()
			return
		}
		s.whenReady(attempt+1, f)
	})
}

func (s *Service) restoreAudio() {
	if !s.modes.Muted {
		s.warn(s.engine.SetMute(false), "restore audio")
	}
}

// TogglePlay pauses a playing file, resumes a paused one and restarts one
// that has ended
func (s *Service) TogglePlay() error {
	if s.playlist.IsEmpty() {
		return nil
	}

	state, err := s.engine.State()
	if err != nil {
		return errors.Wrap(err, "query player state")
	}

	switch {
	case state == model.PlayerStateEnded:
		s.warn(s.engine.Stop(), "stop ended file")
		s.after(&s.pending, RestartDelay, func() {
			s.warn(s.engine.Play(), "restart")
			s.ensureTimeUpdates()
		})
		return nil
	case state == model.PlayerStatePlaying:
		return errors.Wrap(s.engine.Pause(), "pause")
	default:
		if err := s.engine.Play(); err != nil {
			return errors.Wrap(err, "play")
		}
		s.ensureTimeUpdates()
		return nil
	}
}

// Replay restarts the current file from the beginning
func (s *Service) Replay() error {
	if _, ok := s.playlist.Current(); !ok {
		return nil
	}

	s.stopTimeUpdates()
	if err := s.engine.Stop(); err != nil {
		return errors.Wrap(err, "stop for replay")
	}
	s.after(&s.pending, RestartDelay, func() {
		if err := s.engine.Play(); err != nil {
			s.fail(err)
			s.notify()
			return
		}
		s.whenReady(0, func() {
			s.warn(s.engine.Seek(0), "seek to start")
			s.startTimeUpdates()
		})
	})
	return nil
}

// SetSkipOffsets changes the skip distances; non-positive values are ignored
func (s *Service) SetSkipOffsets(short, long time.Duration) {
	if short > 0 {
		s.config.SkipShort = short
	}
	if long > 0 {
		s.config.SkipLong = long
	}
}

// SkipForward jumps ahead by the short offset
func (s *Service) SkipForward() error {
	return s.skip(s.config.SkipShort)
}

// SkipForwardLong jumps ahead by the long offset
func (s *Service) SkipForwardLong() error {
	return s.skip(s.config.SkipLong)
}

// SkipBackward jumps back by the short offset, stopping at the start
func (s *Service) SkipBackward() error {
	return s.skip(-s.config.SkipShort)
}

func (s *Service) skip(offset time.Duration) error {
	state, err := s.engine.State()
	if err != nil || !state.IsActive() {
		return nil
	}
	pos, err := s.engine.Position()
	if err != nil {
		return nil
	}

	target := pos + offset
	if target < 0 {
		target = 0
	}
	return errors.Wrap(s.engine.Seek(target), "seek")
}

// Next plays the following file, wrapping to the first; in random mode it
// plays a random file instead
func (s *Service) Next() error {
	return s.step((*model.Playlist).Next)
}

// Previous plays the preceding file, wrapping to the last; in random mode it
// plays a random file instead
func (s *Service) Previous() error {
	return s.step((*model.Playlist).Previous)
}

func (s *Service) step(move func(*model.Playlist) bool) error {
	if s.playlist.IsEmpty() {
		return nil
	}
	if s.modes.Random {
		return s.RandomVideo()
	}
	defer s.notify()
	move(s.playlist)
	return s.playCurrent()
}

// RandomVideo plays a random file other than the current one. With fewer
// than two files it does nothing.
func (s *Service) RandomVideo() error {
	if !s.playlist.Shuffle(s.rng) {
		return nil
	}
	defer s.notify()
	return s.playCurrent()
}

// Delete stops playback, removes the current file from disk and from the
// playlist, then plays the file that took its place
func (s *Service) Delete() error {
	path, ok := s.playlist.Current()
	if !ok {
		return nil
	}
	defer s.notify()

	s.cancel(&s.pending)
	s.cancel(&s.audio)
	s.stopTimeUpdates()
	s.warn(s.engine.Stop(), "stop before delete")

	if err := platform.DeleteFile(path); err != nil {
		zlog.Error().Err(err).Str("file", path).Msg("delete failed")
		s.fail(err)
		return err
	}
	zlog.Info().Str("file", path).Msg("deleted")

	s.playlist.RemoveCurrent()
	name := filepath.Base(path)

	if s.playlist.IsEmpty() {
		s.title = ""
		s.clock = model.ClockPlaceholder
		s.status = model.Status{Kind: model.StatusNoneLeft, Name: name}
		return nil
	}

	if err := s.playCurrent(); err != nil {
		return err
	}
	index, total := s.playlist.Position()
	s.status = model.Status{Kind: model.StatusDeleted, Name: name, Index: index, Total: total}
	return nil
}

// ToggleRepeat flips repeat mode
func (s *Service) ToggleRepeat() {
	s.modes.Repeat = !s.modes.Repeat
	s.notify()
}

// ToggleAutoPlay flips auto-advance mode
func (s *Service) ToggleAutoPlay() {
	s.modes.AutoPlay = !s.modes.AutoPlay
	s.notify()
}

// ToggleRandom flips random navigation
func (s *Service) ToggleRandom() {
	s.modes.Random = !s.modes.Random
	s.notify()
}

// ToggleMute flips mute and applies it to the engine
func (s *Service) ToggleMute() error {
	s.modes.Muted = !s.modes.Muted
	defer s.notify()
	return errors.Wrap(s.engine.SetMute(s.modes.Muted), "set mute")
}

// ToggleFullscreen flips fullscreen on the engine's video window
func (s *Service) ToggleFullscreen() error {
	return s.setFullscreen(!s.modes.Fullscreen)
}

// ExitFullscreen leaves fullscreen; it does nothing when not fullscreen
func (s *Service) ExitFullscreen() error {
	if !s.modes.Fullscreen {
		return nil
	}
	return s.setFullscreen(false)
}

func (s *Service) setFullscreen(on bool) error {
	if err := s.engine.SetFullscreen(on); err != nil {
		return errors.Wrap(err, "set fullscreen")
	}
	s.modes.Fullscreen = on
	s.notify()
	return nil
}

// SetVolume sets the volume, clamped to 0-100
func (s *Service) SetVolume(volume int) error {
	volume = clampVolume(volume)
	if volume == s.volume {
		return nil
	}
	s.volume = volume
	defer s.notify()
	return errors.Wrap(s.engine.SetVolume(volume), "set volume")
}

// Tick refreshes the time display and reacts to the end of a file. It
// reschedules itself unless it hands over to a new file or a replay.
func (s *Service) Tick() {
	if s.closed {
		return
	}

	state, err := s.engine.State()
	if err != nil {
		zlog.Debug().Err(err).Msg("state query failed")
		s.schedulePoll()
		return
	}

	switch {
	case state.IsActive():
		pos, perr := s.engine.Position()
		length, lerr := s.engine.Length()
		if perr == nil && lerr == nil && pos >= 0 && length > 0 {
			if clock := model.ClockLabel(pos, length); clock != s.clock {
				s.clock = clock
				s.notify()
			}
		}
		s.schedulePoll()

	case state == model.PlayerStateEnded:
		s.onEnded()

	default:
		s.schedulePoll()
	}
}

func (s *Service) onEnded() {
	switch {
	case s.modes.Repeat:
		s.warn(s.Replay(), "repeat")
	case s.modes.AutoPlay:
		var moved bool
		if s.modes.Random {
			moved = s.playlist.Shuffle(s.rng)
		} else {
			moved = s.playlist.Next()
		}
		if !moved {
			s.schedulePoll()
			return
		}
		s.warn(s.playCurrent(), "auto advance")
		s.notify()
	default:
		s.schedulePoll()
	}
}

func (s *Service) startTimeUpdates() {
	s.cancel(&s.poll)
	s.polling = true
	s.Tick()
}

func (s *Service) ensureTimeUpdates() {
	if !s.polling {
		s.startTimeUpdates()
	}
}

func (s *Service) stopTimeUpdates() {
	s.cancel(&s.poll)
	s.polling = false
}

func (s *Service) schedulePoll() {
	s.polling = true
	s.after(&s.poll, PollInterval, s.Tick)
}

// Close cancels every pending timer and shuts the engine down
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel(&s.pending)
	s.cancel(&s.audio)
	s.stopTimeUpdates()

	s.warn(s.engine.Stop(), "stop on close")
	return errors.Wrap(s.engine.Close(), "close player")
}

// after replaces the pending timer in slot with a new one
func (s *Service) after(slot *func(), d time.Duration, f func()) {
	s.cancel(slot)
	if s.closed {
		return
	}
	*slot = s.sched.AfterFunc(d, f)
}

func (s *Service) cancel(slot *func()) {
	if *slot != nil {
		(*slot)()
		*slot = nil
	}
}

func (s *Service) fail(err error) {
	s.status = model.Status{Kind: model.StatusError, Err: err.Error()}
}

func (s *Service) warn(err error, what string) {
	if err != nil {
		zlog.Warn().Err(err).Msg(what)
	}
}

func (s *Service) notify() {
	if s.onUpdate != nil {
		s.onUpdate(s.Snapshot())
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
