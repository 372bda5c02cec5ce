package audio

import "sort"

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

func (w WaveType) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	case WaveSawtooth:
		return "sawtooth"
	default:
		return "sine"
	}
}

// Note is one melody step. Beats must be positive.
type Note struct {
	Name  string
	Beats float64
}

// Overtone adds a sine harmonic above each melody note.
type Overtone struct {
	Mul    float64
	Volume float64
}

// DefaultOvertoneCeiling is the frequency at and above which no overtone is
// added.
const DefaultOvertoneCeiling = 800.0

// Instrument describes how a song is voiced.
type Instrument struct {
	MelodyWave   WaveType
	MelodyVolume float64
	Overtone     *Overtone
	// OvertoneCeiling defaults to DefaultOvertoneCeiling when zero.
	OvertoneCeiling float64
	BassWave        WaveType
	BassVolume      float64
	Attack          float64 // seconds
	BPM             float64
}

// Song is a looping background track.
type Song struct {
	Key        string
	Melody     []Note
	Bass       []string
	Instrument Instrument
	// Gain is the music channel gain while this song plays; zero means the
	// composer's default.
	Gain float64
}

// BeatSeconds returns the length of one beat.
func (s Song) BeatSeconds() float64 {
	if s.Instrument.BPM <= 0 {
		return 0
	}
	return 60 / s.Instrument.BPM
}

// TotalSeconds returns the length of one loop iteration.
func (s Song) TotalSeconds() float64 {
	beats := 0.0
	for _, n := range s.Melody {
		beats += n.Beats
	}
	return beats * s.BeatSeconds()
}

func nt(name string, beats float64) Note { return Note{Name: name, Beats: beats} }

var songs = map[string]Song{
	"boot": {
		Key: "boot",
		Melody: []Note{
			nt("E4", 1), nt("G4", 1), nt("A4", 2),
			nt("G4", 1), nt("E4", 1), nt("D4", 2),
			nt("C4", 1), nt("E4", 1), nt("G4", 1.5),
			nt("A4", 0.5), nt("G4", 2),
			nt("E4", 1), nt("D4", 1), nt("C4", 2),
			nt("D4", 1), nt("E4", 1), nt("C4", 2),
		},
		Bass:       []string{"C3", "G3", "A3", "F3"},
		Instrument: Instrument{MelodyWave: WaveSquare, MelodyVolume: 0.14, BassWave: WaveSquare, BassVolume: 0.08, Attack: 0.02, BPM: 90},
	},
	"home": {
		Key: "home",
		Melody: []Note{
			nt("C4", 1.5), nt("E4", 0.5), nt("G4", 1),
			nt("F4", 1), nt("E4", 1), nt("D4", 1),
			nt("C4", 2), nt("D4", 1), nt("E4", 1),
			nt("F4", 1.5), nt("E4", 0.5), nt("D4", 2),
			nt("G4", 1), nt("F4", 1), nt("E4", 1),
			nt("D4", 1), nt("C4", 2),
		},
		Bass:       []string{"C3", "F3", "G3", "C3"},
		Instrument: Instrument{MelodyWave: WaveTriangle, MelodyVolume: 0.2, BassWave: WaveTriangle, BassVolume: 0.1, Attack: 0.06, BPM: 90},
	},
	"town": {
		Key: "town",
		Melody: []Note{
			nt("G4", 1), nt("A4", 0.5), nt("B4", 0.5),
			nt("C5", 1.5), nt("B4", 0.5), nt("A4", 1),
			nt("G4", 1), nt("E4", 2),
			nt("F4", 1), nt("G4", 1), nt("A4", 1.5),
			nt("G4", 0.5), nt("F4", 1), nt("E4", 1),
			nt("D4", 1), nt("G4", 2),
		},
		Bass: []string{"G3", "C3", "F3", "G3"},
		Instrument: Instrument{
			MelodyWave: WaveSawtooth, MelodyVolume: 0.12,
			Overtone: &Overtone{Mul: 1.5, Volume: 0.03},
			BassWave: WaveSine, BassVolume: 0.12, Attack: 0.04, BPM: 90,
		},
	},
	"cafe": {
		Key: "cafe",
		Melody: []Note{
			nt("E4", 1), nt("A4", 1), nt("G4", 0.5),
			nt("A4", 0.5), nt("B4", 2),
			nt("A4", 1), nt("G4", 0.5), nt("E4", 0.5),
			nt("F4", 1), nt("E4", 1), nt("D4", 2),
			nt("C4", 1), nt("E4", 0.5), nt("G4", 0.5),
			nt("A4", 1.5), nt("G4", 0.5), nt("E4", 2),
		},
		Bass: []string{"A3", "F3", "C3", "G3"},
		Instrument: Instrument{
			MelodyWave: WaveSine, MelodyVolume: 0.2,
			Overtone: &Overtone{Mul: 2, Volume: 0.04},
			BassWave: WaveTriangle, BassVolume: 0.1, Attack: 0.08, BPM: 85,
		},
	},
	"ride": {
		Key: "ride",
		Melody: []Note{
			nt("A4", 2), nt("C5", 2),
			nt("E4", 2), nt("G4", 2),
			nt("F4", 3), nt("G4", 1),
			nt("E4", 2), nt("D4", 2),
			nt("C4", 4),
			nt("E4", 2), nt("G4", 2),
			nt("A4", 3), nt("G4", 1),
			nt("E4", 4),
		},
		Bass:       []string{"E3", "A3", "B3", "E3", "A3", "C4", "B3", "A3"},
		Instrument: Instrument{MelodyWave: WaveSine, MelodyVolume: 0.25, BassWave: WaveSine, BassVolume: 0.1, Attack: 0.1, BPM: 60},
	},
	"final": {
		Key: "final",
		Melody: []Note{
			nt("E4", 2), nt("G4", 1), nt("A4", 3),
			nt("G4", 1), nt("E4", 2), nt("C4", 2),
			nt("D4", 1), nt("E4", 1), nt("F4", 3),
			nt("E4", 1), nt("D4", 2), nt("C4", 4),
			nt("A4", 2), nt("C5", 1), nt("E5", 3),
			nt("D5", 1), nt("C5", 2), nt("A4", 2),
			nt("G4", 2), nt("F4", 2), nt("E4", 4),
			nt("E4", 2), nt("G4", 1), nt("A4", 3),
			nt("G4", 1), nt("E4", 2), nt("C4", 4),
		},
		Bass: []string{"C3", "G3", "A3", "F3", "E3", "A3", "G3", "C3"},
		Instrument: Instrument{
			MelodyWave: WaveTriangle, MelodyVolume: 0.2,
			Overtone: &Overtone{Mul: 2.5, Volume: 0.045},
			BassWave: WaveSine, BassVolume: 0.1, Attack: 0.08, BPM: 56,
		},
		Gain: 0.45,
	},
}

// Lookup returns the song for a scene key. Unknown keys fall back to boot.
func Lookup(key string) Song {
	if s, ok := songs[key]; ok {
		return s
	}
	return songs["boot"]
}

// SongKeys lists every known song key in sorted order.
func SongKeys() []string {
	keys := make([]string, 0, len(songs))
	for k := range songs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
