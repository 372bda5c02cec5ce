package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteFrequency(t *testing.T) {
	f, ok := NoteFrequency("A4")
	assert.True(t, ok)
	assert.Equal(t, 440.0, f)

	f, ok = NoteFrequency("Bb3")
	assert.True(t, ok)
	assert.Equal(t, 233.08, f)

	_, ok = NoteFrequency("H9")
	assert.False(t, ok)
}

func TestLookupFallsBackToBoot(t *testing.T) {
	assert.Equal(t, "boot", Lookup("nowhere").Key)
	assert.Equal(t, "cafe", Lookup("cafe").Key)
	assert.Equal(t, []string{"boot", "cafe", "final", "home", "ride", "town"}, SongKeys())
}

func TestEverySongUsesKnownNotes(t *testing.T) {
	for _, key := range SongKeys() {
		song := Lookup(key)
		for _, n := range song.Melody {
			_, ok := NoteFrequency(n.Name)
			assert.True(t, ok, "%s melody note %s", key, n.Name)
			assert.Positive(t, n.Beats)
		}
		for _, name := range song.Bass {
			_, ok := NoteFrequency(name)
			assert.True(t, ok, "%s bass note %s", key, name)
		}
	}
}

func TestArrangeTotal(t *testing.T) {
	for _, key := range SongKeys() {
		song := Lookup(key)
		beats := 0.0
		for _, n := range song.Melody {
			beats += n.Beats
		}
		arr := Arrange(song, 2)
		assert.InDelta(t, beats*60/song.Instrument.BPM, arr.Total, 1e-9, key)

		// Melody and bass end together.
		last := arr.Melody[len(arr.Melody)-1]
		lastBass := arr.Bass[len(arr.Bass)-1]
		assert.InDelta(t, 2+arr.Total, last.End(), 1e-9, key)
		assert.InDelta(t, 2+arr.Total, lastBass.End(), 1e-9, key)
		assert.InDelta(t, 2.0, arr.Bass[0].Start, 1e-9, key)
	}
}

func TestArrangeMelodyEnvelope(t *testing.T) {
	song := Song{
		Key:        "t",
		Melody:     []Note{{"A4", 2}},
		Instrument: Instrument{MelodyWave: WaveSquare, MelodyVolume: 0.2, Attack: 0.05, BPM: 60},
	}
	arr := Arrange(song, 1)
	require.Len(t, arr.Melody, 1)
	v := arr.Melody[0]
	assert.Equal(t, 1.0, v.Start)
	assert.Equal(t, 2.0, v.Duration)
	assert.Equal(t, WaveSquare, v.Wave)
	assertEnv(t, []EnvPoint{{0, 0}, {0.05, 0.2}, {2 - MelodyRelease, 0.2}, {2, 0}}, v.Env)
	assert.Empty(t, arr.Bass)
}

func TestArrangeOvertoneBelowCeilingOnly(t *testing.T) {
	song := Song{
		Melody: []Note{{"A4", 1}, {"A5", 1}},
		Instrument: Instrument{
			MelodyWave: WaveTriangle, MelodyVolume: 0.2,
			Overtone: &Overtone{Mul: 2, Volume: 0.04},
			Attack:   0.1, BPM: 60,
		},
	}
	arr := Arrange(song, 0)

	// A4 gets an overtone, A5 (880 Hz) does not.
	require.Len(t, arr.Melody, 3)
	ot := arr.Melody[1]
	assert.Equal(t, WaveSine, ot.Wave)
	assert.Equal(t, 880.0, ot.Freq)
	assert.InDelta(t, 0.06, ot.Env[1].T, 1e-12)
	assert.Equal(t, 0.04, ot.Env[1].V)
	assert.Equal(t, EnvPoint{1, 0}, ot.Env[2])
	assert.Equal(t, 1.0, arr.Melody[2].Start)
	assert.Equal(t, 880.0, arr.Melody[2].Freq)
}

func TestArrangeUnknownNotesAreRests(t *testing.T) {
	song := Song{
		Melody:     []Note{{"C4", 1}, {"X0", 1}, {"D4", 1}},
		Bass:       []string{"C3", "??", "G3"},
		Instrument: Instrument{MelodyVolume: 0.1, BassVolume: 0.1, BPM: 60},
	}
	arr := Arrange(song, 0)

	require.Len(t, arr.Melody, 2)
	assert.Equal(t, 2.0, arr.Melody[1].Start)
	assert.Equal(t, 3.0, arr.Total)

	require.Len(t, arr.Bass, 2)
	assert.Equal(t, 0.0, arr.Bass[0].Start)
	assert.Equal(t, 2.0, arr.Bass[1].Start)
	assertEnv(t, []EnvPoint{{0, 0}, {BassAttack, 0.1}, {1 - BassRelease, 0.1}, {1, 0}}, arr.Bass[0].Env)
}

func TestEnvelopeAt(t *testing.T) {
	env := []EnvPoint{{0, 0}, {0.1, 1}, {0.5, 1}, {1, 0}}
	assert.Equal(t, 0.0, EnvelopeAt(env, -1))
	assert.InDelta(t, 0.5, EnvelopeAt(env, 0.05), 1e-9)
	assert.Equal(t, 1.0, EnvelopeAt(env, 0.3))
	assert.InDelta(t, 0.5, EnvelopeAt(env, 0.75), 1e-9)
	assert.Equal(t, 0.0, EnvelopeAt(env, 2))
	assert.Equal(t, 1.0, EnvelopeAt(nil, 0.3))
}

func TestFrequencyGlide(t *testing.T) {
	lin := Voice{Freq: 440, FreqEnd: 660, Glide: GlideLinear, GlideTime: 0.06}
	assert.Equal(t, 440.0, lin.FrequencyAt(0))
	assert.InDelta(t, 550, lin.FrequencyAt(0.03), 1e-9)
	assert.Equal(t, 660.0, lin.FrequencyAt(0.08))

	exp := Voice{Freq: 200, FreqEnd: 80, Glide: GlideExponential, GlideTime: 0.5}
	assert.Equal(t, 200.0, exp.FrequencyAt(0))
	// Geometric midpoint.
	assert.InDelta(t, 126.491106, exp.FrequencyAt(0.25), 1e-5)
	assert.Equal(t, 80.0, exp.FrequencyAt(0.5))

	flat := Voice{Freq: 330}
	assert.Equal(t, 330.0, flat.FrequencyAt(0.2))
}

func TestWaveShapes(t *testing.T) {
	assert.InDelta(t, 1, waveAt(WaveSine, 0.25), 1e-12)
	assert.Equal(t, 1.0, waveAt(WaveSquare, 0.1))
	assert.Equal(t, -1.0, waveAt(WaveSquare, 0.6))
	assert.Equal(t, 1.0, waveAt(WaveTriangle, 0.5))
	assert.Equal(t, -1.0, waveAt(WaveTriangle, 0))
	assert.Equal(t, -1.0, waveAt(WaveSawtooth, 0))
	assert.Equal(t, 0.0, waveAt(WaveSawtooth, 0.5))
}

func assertEnv(t *testing.T, want, got []EnvPoint) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].T, got[i].T, 1e-9, "point %d time", i)
		assert.InDelta(t, want[i].V, got[i].V, 1e-9, "point %d value", i)
	}
}
