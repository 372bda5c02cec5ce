package audio

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Timing constants for background loops and fades.
const (
	LoopMargin  = 100 * time.Millisecond
	DefaultFade = 1500 * time.Millisecond
)

// Stopper cancels a scheduled call. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs delayed calls on the wall clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// WallClock schedules with time.AfterFunc.
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Unlocker makes the output device ready to play.
type Unlocker interface {
	Resume(ctx context.Context) error
}

// Composer plays the per-scene background loops and the UI sound effects.
// A Composer without a bus is silent: every call is a no-op.
type Composer struct {
	mu       sync.Mutex
	bus      Bus
	sched    Scheduler
	unlocker Unlocker
	rng      *rand.Rand

	musicGain float64
	unlocked  bool
	pending   string // key requested before unlock

	gen       uint64
	current   string
	song      Song
	lastStart float64
	loop      Stopper
	fade      Stopper
}

// NewComposer creates a composer that owns bus. unlocker may be nil when
// the bus is always ready.
func NewComposer(bus Bus, sched Scheduler, unlocker Unlocker, seed int64) *Composer {
	if sched == nil {
		sched = WallClock{}
	}
	return &Composer{
		bus:       bus,
		sched:     sched,
		unlocker:  unlocker,
		rng:       rand.New(rand.NewSource(seed)),
		musicGain: DefaultMusicGain,
	}
}

// NewSilentComposer creates a composer with no output.
func NewSilentComposer() *Composer {
	return NewComposer(nil, nil, nil, 0)
}

// SetMusicGain changes the default music gain used by songs without their
// own gain and restored after fades.
func (c *Composer) SetMusicGain(g float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.musicGain = g
}

// Silent reports whether the composer has no output.
func (c *Composer) Silent() bool {
	return c.bus == nil
}

// Unlocked reports whether the output has been resumed.
func (c *Composer) Unlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unlocked || c.bus == nil
}

// Current returns the key of the playing track, or "" when stopped.
func (c *Composer) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Unlock resumes the output device without blocking. The returned channel
// receives exactly one result. A background track requested before unlock
// starts once the device is ready.
func (c *Composer) Unlock(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if c.bus == nil || c.unlocked {
		c.mu.Unlock()
		done <- nil
		return done
	}
	c.mu.Unlock()

	go func() {
		var err error
		if c.unlocker != nil {
			err = c.unlocker.Resume(ctx)
		}

		c.mu.Lock()
		if err == nil && !c.unlocked {
			c.unlocked = true
			if c.pending != "" {
				key := c.pending
				c.pending = ""
				c.startLocked(key)
			}
		}
		c.mu.Unlock()

		if err != nil {
			log.Printf("Audio unlock failed: %v", err)
		} else {
			log.Println("Audio unlocked")
		}
		done <- err
	}()
	return done
}

// PlayBGM replaces the current track with the song for key.
func (c *Composer) PlayBGM(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bus == nil {
		return
	}
	if !c.unlocked {
		c.pending = key
		return
	}
	c.startLocked(key)
}

func (c *Composer) startLocked(key string) {
	c.stopLocked()

	song := Lookup(key)
	gain := song.Gain
	if gain <= 0 {
		gain = c.musicGain
	}
	c.bus.SetGain(Music, gain)

	c.current = song.Key
	c.song = song
	c.scheduleLocked(c.bus.Now() + LeadIn)
}

// scheduleLocked queues one iteration at start and arms the continuation.
func (c *Composer) scheduleLocked(start float64) {
	arr := Arrange(c.song, start)
	for _, v := range arr.Voices() {
		c.bus.Schedule(Music, v)
	}
	c.lastStart = start

	gen := c.gen
	c.loop = c.sched.AfterFunc(ContinuationDelay(arr.Total), func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen || c.bus == nil {
			return
		}
		next := math.Max(c.lastStart+arr.Total, c.bus.Now()+LeadIn)
		c.scheduleLocked(next)
	})
}

// ContinuationDelay is how long after scheduling an iteration of length
// total the next one is queued.
func ContinuationDelay(total float64) time.Duration {
	d := seconds(total) - LoopMargin
	if d < 0 {
		return 0
	}
	return d
}

// StopBGM stops the current track immediately.
func (c *Composer) StopBGM() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = ""
	if c.bus == nil {
		return
	}
	c.stopLocked()
}

func (c *Composer) stopLocked() {
	c.gen++
	if c.loop != nil {
		c.loop.Stop()
		c.loop = nil
	}
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
	c.current = ""
	c.bus.Clear(Music)
}

// FadeOutBGM ramps the music to silence over d, then stops the track and
// restores the default music gain. If another track starts before d has
// passed, the stop is skipped.
func (c *Composer) FadeOutBGM(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bus == nil {
		return
	}
	if !c.unlocked {
		c.pending = ""
		return
	}
	if d < 0 {
		d = 0
	}

	c.bus.RampGain(Music, 0, d.Seconds())
	if c.fade != nil {
		c.fade.Stop()
	}
	gen := c.gen
	c.fade = c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen {
			return
		}
		c.stopLocked()
		c.bus.SetGain(Music, c.musicGain)
	})
}

// PlayTypeSFX plays the short typewriter click.
func (c *Composer) PlayTypeSFX() {
	c.playSFX(func(now float64) Voice {
		return Voice{
			Start:    now,
			Duration: 0.04,
			Wave:     WaveSquare,
			Freq:     600 + c.rng.Float64()*200,
			Env:      []EnvPoint{{0, 0.08}, {0.04, 0}},
		}
	})
}

// PlayAdvanceSFX plays the rising blip used when a dialog line advances.
func (c *Composer) PlayAdvanceSFX() {
	c.playSFX(func(now float64) Voice {
		return Voice{
			Start:     now,
			Duration:  0.1,
			Wave:      WaveSine,
			Freq:      440,
			FreqEnd:   660,
			Glide:     GlideLinear,
			GlideTime: 0.06,
			Env:       []EnvPoint{{0, 0.12}, {0.1, 0}},
		}
	})
}

// PlayTransitionSFX plays the falling sweep used between scenes.
func (c *Composer) PlayTransitionSFX() {
	c.playSFX(func(now float64) Voice {
		return Voice{
			Start:     now,
			Duration:  0.5,
			Wave:      WaveSine,
			Freq:      200,
			FreqEnd:   80,
			Glide:     GlideExponential,
			GlideTime: 0.5,
			Env:       []EnvPoint{{0, 0.1}, {0.5, 0}},
		}
	})
}

// playSFX drops the effect when silent or still locked.
func (c *Composer) playSFX(build func(now float64) Voice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bus == nil || !c.unlocked {
		return
	}
	c.bus.Schedule(SFX, build(c.bus.Now()))
}
