package audio

// Voicing constants, in seconds.
const (
	LeadIn         = 0.05
	MelodyRelease  = 0.12
	BassAttack     = 0.1
	BassRelease    = 0.15
	OvertoneAttack = 0.6 // fraction of the instrument attack
)

// EnvPoint is one breakpoint of a gain envelope, relative to voice start.
type EnvPoint struct {
	T, V float64
}

// Glide selects how a voice's pitch moves from Freq to FreqEnd.
type Glide int

const (
	GlideNone Glide = iota
	GlideLinear
	GlideExponential
)

// Voice is a single scheduled oscillator.
type Voice struct {
	Start     float64 // seconds on the bus clock
	Duration  float64
	Wave      WaveType
	Freq      float64
	FreqEnd   float64
	Glide     Glide
	GlideTime float64
	Env       []EnvPoint
}

// End returns the time the voice stops.
func (v Voice) End() float64 {
	return v.Start + v.Duration
}

// Arrangement is one loop iteration of a song laid out on the bus clock.
type Arrangement struct {
	Start  float64
	Total  float64
	Melody []Voice
	Bass   []Voice
}

// Voices returns melody and bass voices together.
func (a Arrangement) Voices() []Voice {
	out := make([]Voice, 0, len(a.Melody)+len(a.Bass))
	out = append(out, a.Melody...)
	return append(out, a.Bass...)
}

// Arrange lays out one iteration of song starting at start. Melody and bass
// share the start reference and the total duration. Unknown note names are
// rests: they keep their beats instead of being skipped, so Total always
// equals the beat sum and melody and bass stay aligned.
func Arrange(song Song, start float64) Arrangement {
	inst := song.Instrument
	beat := song.BeatSeconds()
	ceiling := inst.OvertoneCeiling
	if ceiling <= 0 {
		ceiling = DefaultOvertoneCeiling
	}

	arr := Arrangement{Start: start, Total: song.TotalSeconds()}

	cursor := start
	for _, note := range song.Melody {
		dur := note.Beats * beat
		freq, ok := NoteFrequency(note.Name)
		if ok {
			arr.Melody = append(arr.Melody, Voice{
				Start:    cursor,
				Duration: dur,
				Wave:     inst.MelodyWave,
				Freq:     freq,
				Env:      trapezoid(inst.Attack, inst.MelodyVolume, dur, MelodyRelease),
			})
			if inst.Overtone != nil && freq < ceiling {
				arr.Melody = append(arr.Melody, Voice{
					Start:    cursor,
					Duration: dur,
					Wave:     WaveSine,
					Freq:     freq * inst.Overtone.Mul,
					Env: []EnvPoint{
						{0, 0},
						{inst.Attack * OvertoneAttack, inst.Overtone.Volume},
						{dur, 0},
					},
				})
			}
		}
		cursor += dur
	}

	if len(song.Bass) > 0 {
		bassDur := arr.Total / float64(len(song.Bass))
		bassTime := start
		for _, name := range song.Bass {
			if freq, ok := NoteFrequency(name); ok {
				arr.Bass = append(arr.Bass, Voice{
					Start:    bassTime,
					Duration: bassDur,
					Wave:     inst.BassWave,
					Freq:     freq,
					Env:      trapezoid(BassAttack, inst.BassVolume, bassDur, BassRelease),
				})
			}
			bassTime += bassDur
		}
	}

	return arr
}

// trapezoid ramps up over attack, holds vol, and ramps down over the final
// release seconds. The hold point never precedes the attack peak.
func trapezoid(attack, vol, dur, release float64) []EnvPoint {
	if attack > dur {
		attack = dur
	}
	hold := dur - release
	if hold < attack {
		hold = attack
	}
	return []EnvPoint{{0, 0}, {attack, vol}, {hold, vol}, {dur, 0}}
}
