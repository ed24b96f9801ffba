package listing

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Task is a handle to scheduled work.
type Task interface {
	// Cancel prevents the task from running. It reports false when the task
	// already ran or was canceled.
	Cancel() bool
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// TimerScheduler schedules work on runtime timers.
type TimerScheduler struct{}

func NewTimerScheduler() TimerScheduler { return TimerScheduler{} }

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(delay, fn)}
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Cancel() bool { return t.t.Stop() }

// ManualScheduler runs tasks only when its clock is advanced. Tasks due at the
// same instant run in scheduling order.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

type manualTask struct {
	s        *ManualScheduler
	due      time.Duration
	seq      uint64
	fn       func()
	canceled bool
	ran      bool
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTask{s: s, due: s.now + max(delay, 0), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.ran || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Advance moves the clock forward by d and runs every task that became due.
// Tasks scheduled by running tasks are honored when they fall inside the
// window. It returns the number of tasks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
	return ran
}

// Pending returns the number of tasks that have neither run nor been canceled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// nextDue removes and returns the earliest runnable task due at or before
// target, moving the clock to its due time.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = slices.DeleteFunc(s.tasks, func(t *manualTask) bool { return t.canceled })
	if len(s.tasks) == 0 {
		return nil
	}

	next := slices.MinFunc(s.tasks, func(a, b *manualTask) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.seq, b.seq))
	})
	if next.due > target {
		return nil
	}

	s.tasks = slices.DeleteFunc(s.tasks, func(t *manualTask) bool { return t == next })
	next.ran = true
	s.now = max(s.now, next.due)
	return next
}
