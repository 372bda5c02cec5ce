package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(1000)

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func stream(t *testing.T, m *Mixer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, n, got)
	return buf
}

func TestMixerSchedulesAgainstSampleClock(t *testing.T) {
	m := NewMixer(testRate, 1)
	m.Schedule(SFX, Voice{Start: 0.1, Duration: 0.1, Wave: WaveSquare, Freq: 100})

	assert.Zero(t, peak(stream(t, m, 100)))
	assert.InDelta(t, 0.1, m.Now(), 1e-12)

	assert.InDelta(t, DefaultSFXGain, peak(stream(t, m, 100)), 1e-9)

	assert.Zero(t, peak(stream(t, m, 100)))
	stream(t, m, 10)
	assert.Zero(t, m.Pending(SFX))
	assert.InDelta(t, 0.31, m.Now(), 1e-12)
}

func TestMixerClearDropsPendingVoices(t *testing.T) {
	m := NewMixer(testRate, 1)
	m.Schedule(Music, Voice{Start: 0.05, Duration: 1, Wave: WaveSquare, Freq: 50})
	m.Schedule(Music, Voice{Start: 0.5, Duration: 1, Wave: WaveSquare, Freq: 50})
	assert.Equal(t, 2, m.Pending(Music))

	m.Clear(Music)
	assert.Zero(t, m.Pending(Music))
	assert.Zero(t, peak(stream(t, m, 1000)))
}

func TestMixerGainRamp(t *testing.T) {
	m := NewMixer(testRate, 1)
	assert.Equal(t, DefaultMusicGain, m.Gain(Music))

	m.RampGain(Music, 0, 1)
	stream(t, m, 500)
	assert.InDelta(t, DefaultMusicGain/2, m.Gain(Music), 1e-9)
	stream(t, m, 600)
	assert.Zero(t, m.Gain(Music))

	m.SetGain(Music, 0.45)
	assert.Equal(t, 0.45, m.Gain(Music))
}

func TestMixerMasterGain(t *testing.T) {
	m := NewMixer(testRate, 0.5)
	m.Schedule(SFX, Voice{Duration: 1, Wave: WaveSquare, Freq: 10})
	assert.InDelta(t, 0.5*DefaultSFXGain, peak(stream(t, m, 50)), 1e-9)

	m.SetMasterGain(0)
	assert.Zero(t, peak(stream(t, m, 50)))
}

func TestPCMReader(t *testing.T) {
	m := NewMixer(testRate, 1)
	m.SetGain(SFX, 1)
	m.Schedule(SFX, Voice{Duration: 1, Wave: WaveSquare, Freq: 10})

	r := newPCMReader(m)
	p := make([]byte, 4*8+3)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	left := int16(binary.LittleEndian.Uint16(p[0:]))
	right := int16(binary.LittleEndian.Uint16(p[2:]))
	assert.Equal(t, int16(32767), left)
	assert.Equal(t, left, right)

	n, err = r.Read(make([]byte, 3))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBounceWritesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Bounce(f, "home", beep.SampleRate(8000)))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	frames := (len(data) - 44) / 4
	assert.InDelta(t, Lookup("home").TotalSeconds()*8000, float64(frames), 2)
}

func TestVolumeGain(t *testing.T) {
	silent := newVolume(beep.Silence(-1), 0)
	assert.True(t, silent.Silent)

	half := newVolume(beep.Silence(-1), 0.5)
	assert.False(t, half.Silent)
	assert.InDelta(t, -1, half.Volume, 1e-9)

	setVolume(half, 0)
	assert.True(t, half.Silent)
	setVolume(half, 2)
	assert.False(t, half.Silent)
	assert.InDelta(t, 1, half.Volume, 1e-9)
}
