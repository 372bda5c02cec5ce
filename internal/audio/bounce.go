package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Bounce renders one loop iteration of the song for key to w as a 16-bit
// stereo WAV file.
func Bounce(w io.WriteSeeker, key string, rate beep.SampleRate) error {
	song := Lookup(key)
	m := NewMixer(rate, DefaultMasterGain)
	if song.Gain > 0 {
		m.SetGain(Music, song.Gain)
	}
	arr := Arrange(song, 0)
	for _, v := range arr.Voices() {
		m.Schedule(Music, v)
	}

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, beep.Take(rate.N(seconds(arr.Total)), m), format); err != nil {
		return fmt.Errorf("failed to encode %s loop: %w", song.Key, err)
	}
	return nil
}
