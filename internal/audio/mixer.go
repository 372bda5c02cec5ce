package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Channel selects a mix bus channel.
type Channel int

const (
	Music Channel = iota
	SFX
	numChannels
)

// Default gains.
const (
	DefaultMasterGain = 0.5
	DefaultMusicGain  = 0.35
	DefaultSFXGain    = 0.4
)

// Bus is what the composer schedules voices onto.
type Bus interface {
	// Now is the bus clock in seconds.
	Now() float64
	Schedule(ch Channel, v Voice)
	Clear(ch Channel)
	SetGain(ch Channel, gain float64)
	// RampGain moves the channel gain linearly from its current value to
	// target over the given seconds.
	RampGain(ch Channel, target, seconds float64)
	Gain(ch Channel) float64
}

// gainRamp is a linear gain segment measured in samples.
type gainRamp struct {
	from, to   float64
	start, end int
}

func (g gainRamp) at(pos int) float64 {
	if pos >= g.end || g.end <= g.start {
		return g.to
	}
	if pos <= g.start {
		return g.from
	}
	return g.from + (g.to-g.from)*float64(pos-g.start)/float64(g.end-g.start)
}

type channel struct {
	mix  *beep.Mixer
	gain gainRamp
	buf  [][2]float64
}

// Mixer is the beep-based mix bus. Each channel is a beep.Mixer with its own
// gain ramp; the sum passes through a master volume. The mixer is pulled by
// the audio output goroutine and written by the composer, so every method
// takes the lock.
type Mixer struct {
	mu       sync.Mutex
	rate     beep.SampleRate
	position int
	channels [numChannels]*channel
	master   *effects.Volume
}

// NewMixer creates a mix bus at the given sample rate.
func NewMixer(rate beep.SampleRate, masterGain float64) *Mixer {
	m := &Mixer{rate: rate}
	defaults := [numChannels]float64{Music: DefaultMusicGain, SFX: DefaultSFXGain}
	for i := range m.channels {
		m.channels[i] = &channel{
			mix:  &beep.Mixer{},
			gain: gainRamp{from: defaults[i], to: defaults[i]},
		}
	}
	m.master = newVolume(beep.StreamerFunc(m.mixChannels), masterGain)
	return m
}

// SampleRate returns the bus rate.
func (m *Mixer) SampleRate() beep.SampleRate {
	return m.rate
}

// Now implements Bus.
func (m *Mixer) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.position) / float64(m.rate)
}

// Schedule implements Bus. Voices that start in the past play immediately.
func (m *Mixer) Schedule(ch Channel, v Voice) {
	if ch < 0 || ch >= numChannels || v.Duration <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newVoiceStreamer(v, m.rate)
	now := float64(m.position) / float64(m.rate)
	if offset := m.rate.N(seconds(v.Start - now)); offset > 0 {
		s = beep.Seq(beep.Silence(offset), s)
	}
	m.channels[ch].mix.Add(s)
}

// Clear implements Bus. Pending and sounding voices are dropped.
func (m *Mixer) Clear(ch Channel) {
	if ch < 0 || ch >= numChannels {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[ch].mix.Clear()
}

// Pending returns the number of voices held by a channel.
func (m *Mixer) Pending(ch Channel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[ch].mix.Len()
}

// SetGain implements Bus.
func (m *Mixer) SetGain(ch Channel, gain float64) {
	if ch < 0 || ch >= numChannels {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[ch].gain = gainRamp{from: gain, to: gain, start: m.position, end: m.position}
}

// RampGain implements Bus.
func (m *Mixer) RampGain(ch Channel, target, secs float64) {
	if ch < 0 || ch >= numChannels {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.channels[ch]
	c.gain = gainRamp{
		from:  c.gain.at(m.position),
		to:    target,
		start: m.position,
		end:   m.position + m.rate.N(seconds(secs)),
	}
}

// Gain implements Bus.
func (m *Mixer) Gain(ch Channel) float64 {
	if ch < 0 || ch >= numChannels {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[ch].gain.at(m.position)
}

// SetMasterGain changes the output level.
func (m *Mixer) SetMasterGain(gain float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setVolume(m.master, gain)
}

// Stream implements beep.Streamer. It never drains.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ = m.master.Stream(samples)
	m.position += n
	return n, true
}

// Err implements beep.Streamer.
func (m *Mixer) Err() error { return nil }

// mixChannels sums every channel into samples, applying each channel's gain
// per sample. Called with m.mu held.
func (m *Mixer) mixChannels(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	for _, c := range m.channels {
		if cap(c.buf) < len(samples) {
			c.buf = make([][2]float64, len(samples))
		}
		buf := c.buf[:len(samples)]
		got, _ := c.mix.Stream(buf)
		for i := 0; i < got; i++ {
			g := c.gain.at(m.position + i)
			samples[i][0] += buf[i][0] * g
			samples[i][1] += buf[i][1] * g
		}
	}
	return len(samples), true
}

func seconds(s float64) time.Duration {
	if math.IsNaN(s) || s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
