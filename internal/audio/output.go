package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrNotReady is returned by Resume when the device never became ready.
var ErrNotReady = errors.New("audio: output not ready")

const readyPoll = 50 * time.Millisecond

// Output plays a Mixer through an Ebitengine audio context.
type Output struct {
	ctx    *ebaudio.Context
	player *ebaudio.Player
	mixer  *Mixer
}

// NewOutput opens the Ebitengine audio context at the mixer's rate and
// attaches a player that pulls from it. Playback starts on Resume.
func NewOutput(m *Mixer, buffer time.Duration) (o *Output, err error) {
	defer func() {
		// NewContext panics when a context with another rate already exists
		if r := recover(); r != nil {
			o, err = nil, fmt.Errorf("failed to create audio context: %v", r)
		}
	}()

	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(int(m.SampleRate()))
	}
	player, err := ctx.NewPlayer(newPCMReader(m))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player: %w", err)
	}
	if buffer > 0 {
		player.SetBufferSize(buffer)
	}
	return &Output{ctx: ctx, player: player, mixer: m}, nil
}

// Resume waits for the device to become ready and starts playback. It
// returns early with the context error when ctx is done.
func (o *Output) Resume(ctx context.Context) error {
	ticker := time.NewTicker(readyPoll)
	defer ticker.Stop()

	for !o.ctx.IsReady() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNotReady, ctx.Err())
		case <-ticker.C:
		}
	}
	if !o.player.IsPlaying() {
		o.player.Play()
	}
	return nil
}

// Close stops playback.
func (o *Output) Close() error {
	return o.player.Close()
}

// pcmReader adapts a beep streamer to the 16-bit little-endian stereo byte
// stream Ebitengine players read.
type pcmReader struct {
	src beep.Streamer
	buf [][2]float64
}

const bytesPerFrame = 4

func newPCMReader(src beep.Streamer) *pcmReader {
	return &pcmReader{src: src}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, _ := r.src.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i, s := range buf {
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame:], uint16(toInt16(s[0])))
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame+2:], uint16(toInt16(s[1])))
	}
	return frames * bytesPerFrame, nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}
