// Package fx holds the small animation helpers scenes share: tweens, a
// following camera with fades, and particle emitters.
package fx

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ease is a gween easing function.
type Ease = ease.TweenFunc

// Eases used by the scenes and overlays.
var (
	Linear    Ease = ease.Linear
	SineInOut Ease = ease.InOutSine
	BackOut   Ease = ease.OutBack
)

// Forever repeats a tween until it is stopped.
const Forever = -1

// Tween interpolates a value from From to To over Duration. With Yoyo set
// each cycle plays forward then back. Repeat counts extra cycles; Forever
// never completes.
type Tween struct {
	From, To   float64
	Duration   time.Duration
	Yoyo       bool
	Repeat     int
	Ease       Ease
	OnComplete func()

	elapsed time.Duration
	done    bool
	curve   *gween.Tween
}

// NewTween returns a single forward tween with linear easing.
func NewTween(from, to float64, d time.Duration) *Tween {
	return &Tween{From: from, To: to, Duration: d}
}

// NewPulse returns an endlessly repeating yoyo tween.
func NewPulse(from, to float64, d time.Duration, ease Ease) *Tween {
	return &Tween{From: from, To: to, Duration: d, Yoyo: true, Repeat: Forever, Ease: ease}
}

func (t *Tween) cycle() time.Duration {
	if t.Yoyo {
		return 2 * t.Duration
	}
	return t.Duration
}

// Update advances the tween by dt. OnComplete fires once when the final
// cycle ends.
func (t *Tween) Update(dt time.Duration) {
	if t.done {
		return
	}
	t.elapsed += dt
	if t.Repeat == Forever {
		return
	}
	total := t.cycle() * time.Duration(t.Repeat+1)
	if t.elapsed >= total {
		t.elapsed = total
		t.done = true
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
}

// Progress returns the linear position in [0,1] within the current cycle.
// On the return leg of a yoyo it runs from 1 back to 0.
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 {
		if t.Yoyo {
			return 0
		}
		return 1
	}
	switch {
	case t.done && t.Yoyo:
		return 0
	case t.done:
		return 1
	}
	pos := t.elapsed % t.cycle()
	if pos < t.Duration {
		return float64(pos) / float64(t.Duration)
	}
	return 1 - float64(pos-t.Duration)/float64(t.Duration)
}

// Value returns the eased value at the current position.
func (t *Tween) Value() float64 {
	if t.curve == nil {
		e := t.Ease
		if e == nil {
			e = Linear
		}
		t.curve = gween.New(float32(t.From), float32(t.To), 1, e)
	}
	v, _ := t.curve.Set(float32(t.Progress()))
	return float64(v)
}

// Done reports whether a finite tween has finished.
func (t *Tween) Done() bool { return t.done }

// Reset rewinds the tween to its start.
func (t *Tween) Reset() {
	t.elapsed = 0
	t.done = false
}
