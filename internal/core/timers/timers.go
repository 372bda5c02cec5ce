// Package timers provides tick-driven, cancellable delayed calls.
//
// A Scheduler never runs on its own: the game loop advances it once per
// tick, and due callbacks run synchronously inside Advance. This keeps every
// callback on the game goroutine.
package timers

import (
	"sort"
	"time"
)

// ID identifies a scheduled timer. The zero ID is never issued.
type ID uint64

type timer struct {
	id       ID
	due      time.Duration
	interval time.Duration // 0 for one-shot
	fn       func()
	dead     bool
}

// Scheduler holds pending timers against a virtual clock.
type Scheduler struct {
	now    time.Duration
	nextID ID
	timers []*timer
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed through Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) ID {
	return s.add(d, 0, fn)
}

// Every runs fn every d until cancelled. Non-positive intervals are raised
// to one nanosecond so Advance always terminates.
func (s *Scheduler) Every(d time.Duration, fn func()) ID {
	if d <= 0 {
		d = 1
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) ID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:       s.nextID,
		due:      s.now + d,
		interval: interval,
		fn:       fn,
	})
	return s.nextID
}

// Cancel stops a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id ID) bool {
	for _, t := range s.timers {
		if t.id == id && !t.dead {
			t.dead = true
			return true
		}
	}
	return false
}

// Pending reports whether id is scheduled and not cancelled.
func (s *Scheduler) Pending(id ID) bool {
	for _, t := range s.timers {
		if t.id == id {
			return !t.dead
		}
	}
	return false
}

// Active returns the number of live timers.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

// Clear cancels every timer.
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.dead = true
	}
	s.timers = s.timers[:0]
}

// Advance moves the clock forward by dt and runs every callback that falls
// due, earliest first. Callbacks may schedule or cancel other timers; new
// timers that fall inside the same window also run.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	end := s.now + dt

	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		if t.due > s.now {
			s.now = t.due
		}
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.dead = true
		}
		t.fn()
	}

	s.now = end
	s.compact()
}

func (s *Scheduler) nextDue(end time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.dead || t.due > end {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].due < s.timers[j].due })
}
