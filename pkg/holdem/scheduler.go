package holdem

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled task that can be stopped
type Timer interface {
	// Stop prevents the task from running. It returns false if the task already ran or was stopped
	Stop() bool
}

// Scheduler runs functions after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// timeScheduler schedules with the runtime timer
type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type pendingRestart struct {
	generation uint64
	timer      Timer
	at         time.Time
}

// scheduleRestart starts the next hand after d, replacing any pending restart
func (t *Table) scheduleRestart(d time.Duration) {
	t.cancelRestart()

	gen := t.generation
	t.restart = &pendingRestart{
		generation: gen,
		at:         time.Now().Add(d),
	}
	t.restart.timer = t.scheduler.AfterFunc(d, func() {
		t.fireRestart(gen)
	})
}

// cancelRestart stops the pending restart, if any
// A timer that already fired late finds a stale generation and does nothing
func (t *Table) cancelRestart() {
	t.generation++
	if t.restart == nil {
		return
	}

	t.restart.timer.Stop()
	t.restart = nil
}

func (t *Table) fireRestart(gen uint64) {
	_ = t.exec(func() error {
		if t.restart == nil || t.restart.generation != gen {
			return nil
		}

		t.restart = nil
		if t.phase.isBetting() {
			return nil
		}

		t.startHand()
		t.changed = true
		return nil
	})
}

// ManualScheduler is a Scheduler driven by calls to Advance instead of the clock
// Due tasks run on the goroutine calling Advance
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a ManualScheduler at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{
		s:   m,
		at:  m.now + d,
		seq: m.seq,
		fn:  fn,
	}
	m.tasks = append(m.tasks, task)

	return task
}

// Stop implements Timer
func (m *manualTask) Stop() bool {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.stopped || m.fired {
		return false
	}

	m.stopped = true
	return true
}

// Advance moves the clock forward and runs every task that became due, in order
// It returns the number of tasks run
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	due := make([]*manualTask, 0)
	remaining := m.tasks[:0]
	for _, task := range m.tasks {
		switch {
		case task.stopped:
		case task.at <= m.now:
			task.fired = true
			due = append(due, task)
		default:
			remaining = append(remaining, task)
		}
	}
	m.tasks = remaining
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}

		return due[i].seq < due[j].seq
	})

	for _, task := range due {
		task.fn()
	}

	return len(due)
}

// Pending returns the number of tasks waiting to run
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, task := range m.tasks {
		if !task.stopped {
			n++
		}
	}

	return n
}
