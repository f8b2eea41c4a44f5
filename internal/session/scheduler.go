package session

import (
	"sync/atomic"
	"time"
)

// Scheduler runs f once after d. The returned func cancels the call if it
// has not run yet. Callbacks must run on the goroutine that owns the Service.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc and hands each callback to
// dispatch, which moves it onto the UI goroutine (fyne.Do in the app).
type TimerScheduler struct {
	dispatch func(func())
}

// NewTimerScheduler creates a scheduler; a nil dispatch runs callbacks on the
// timer goroutine.
func NewTimerScheduler(dispatch func(func())) *TimerScheduler {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &TimerScheduler{dispatch: dispatch}
}

// AfterFunc implements Scheduler. A callback already handed to dispatch when
// cancel is called is still dropped.
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) func() {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		s.dispatch(func() {
			if !cancelled.Load() {
				f()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}
