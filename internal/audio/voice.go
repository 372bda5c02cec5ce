package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator renders one Voice: a wave with optional pitch glide shaped by
// its envelope. It stops after the voice duration.
type oscillator struct {
	voice    Voice
	rate     beep.SampleRate
	phase    float64
	position int
	duration int
}

func newVoiceStreamer(v Voice, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		voice:    v,
		rate:     rate,
		duration: int(math.Round(v.Duration * float64(rate))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		t := float64(o.position) / float64(o.rate)
		val := waveAt(o.voice.Wave, o.phase) * EnvelopeAt(o.voice.Env, t)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.voice.FrequencyAt(t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// FrequencyAt returns the pitch t seconds into the voice.
func (v Voice) FrequencyAt(t float64) float64 {
	if v.Glide == GlideNone || v.GlideTime <= 0 || v.FreqEnd <= 0 {
		return v.Freq
	}
	if t >= v.GlideTime {
		return v.FreqEnd
	}
	if t <= 0 {
		return v.Freq
	}
	frac := t / v.GlideTime
	if v.Glide == GlideExponential && v.Freq > 0 {
		return v.Freq * math.Pow(v.FreqEnd/v.Freq, frac)
	}
	return v.Freq + (v.FreqEnd-v.Freq)*frac
}

// EnvelopeAt evaluates a piecewise-linear envelope at t. Before the first
// point it holds the first value, after the last it holds the last.
func EnvelopeAt(env []EnvPoint, t float64) float64 {
	if len(env) == 0 {
		return 1
	}
	if t <= env[0].T {
		return env[0].V
	}
	for i := 1; i < len(env); i++ {
		a, b := env[i-1], env[i]
		if t > b.T {
			continue
		}
		if b.T <= a.T {
			return b.V
		}
		return a.V + (b.V-a.V)*(t-a.T)/(b.T-a.T)
	}
	return env[len(env)-1].V
}

// newVolume wraps s in a base-2 volume effect at linear gain vol. A gain
// of zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(vol), false
}
