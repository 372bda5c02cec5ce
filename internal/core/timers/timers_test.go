package timers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.After(100*time.Millisecond, func() { calls++ })

	s.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, calls)

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Active())
}

func TestEveryRepeatsWithinLargeStep(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Every(30*time.Millisecond, func() { calls++ })

	s.Advance(95 * time.Millisecond)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Active())
}

func TestCancel(t *testing.T) {
	s := NewScheduler()
	calls := 0
	id := s.Every(10*time.Millisecond, func() { calls++ })

	s.Advance(25 * time.Millisecond)
	assert.True(t, s.Pending(id))
	assert.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id))
	assert.False(t, s.Pending(id))

	s.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestCallbackCanCancelItself(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var id ID
	id = s.Every(10*time.Millisecond, func() {
		calls++
		if calls == 3 {
			s.Cancel(id)
		}
	})

	s.Advance(time.Second)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, s.Active())
}

func TestOrderAndNestedScheduling(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(20*time.Millisecond, func() { got = append(got, "b") })
	s.After(10*time.Millisecond, func() {
		got = append(got, "a")
		s.After(5*time.Millisecond, func() { got = append(got, "a2") })
	})

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b"}, got)
	assert.Equal(t, 50*time.Millisecond, s.Now())
}

func TestClear(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(time.Millisecond, func() { fired = true })
	s.Every(time.Millisecond, func() { fired = true })
	s.Clear()

	s.Advance(time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, s.Active())
}
