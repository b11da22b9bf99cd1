package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	wav "github.com/youpy/go-wav"
)

// Recorder renders a Source without an audio device, one buffer at a time,
// the same way a backend callback would.
type Recorder struct {
	source  Source
	buf     []float32
	samples []float32
}

func NewRecorder(source Source) *Recorder {
	return &Recorder{
		source: source,
		buf:    make([]float32, BufferSize),
	}
}

// Frames converts a duration to a number of frames at SampleRate.
func Frames(d time.Duration) int {
	return int(math.Round(d.Seconds() * SampleRate))
}

// Advance renders the next n frames. The last buffer may be shorter than
// BufferSize.
func (r *Recorder) Advance(n int) {
	for n > 0 {
		buf := r.buf
		if n < len(buf) {
			buf = buf[:n]
		}
		r.source.Process(buf)
		r.samples = append(r.samples, buf...)
		n -= len(buf)
	}
}

type activity interface {
	Active() int
}

// Drain renders full buffers until no voice of e is sounding.
func (r *Recorder) Drain(e activity) {
	for e.Active() > 0 {
		r.Advance(BufferSize)
	}
}

// Len returns the number of frames rendered so far.
func (r *Recorder) Len() int { return len(r.samples) }

func (r *Recorder) Samples() []float32 { return r.samples }

// WriteWAV encodes everything rendered so far as 16-bit mono PCM.
func (r *Recorder) WriteWAV(w io.Writer) error {
	const bitsPerSample = 16
	ww := wav.NewWriter(w, uint32(len(r.samples)), 1, SampleRate, bitsPerSample)
	samples := make([]wav.Sample, len(r.samples))
	for i, s := range r.samples {
		samples[i].Values[0] = pcm16(s)
	}
	if err := ww.WriteSamples(samples); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}

func pcm16(s float32) int {
	const scale = 1<<15 - 1
	switch {
	case s > 1:
		s = 1
	case s < -1:
		s = -1
	}
	return int(math.Round(float64(s) * scale))
}
