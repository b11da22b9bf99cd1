package audio

import (
	"math"
	"sync/atomic"
)

const (
	SampleRate = 44100
	BufferSize = 512

	// SoundDurationFrames is the lifetime of a triggered note: one second.
	SoundDurationFrames = SampleRate

	// MasterScale is the fixed headroom applied to the mixed signal.
	MasterScale = 0.5

	defaultAmplitude = 0.2
)

const (
	PropAmplitude = "amplitude"
	twoPi         = 2 * math.Pi
)

// voice is one sine oscillator bound to a fixed pitch.
//
// framesLeft is written by the input goroutine (Trigger) and by the audio
// thread (Process); phase is only ever touched by the audio thread.
type voice struct {
	freq       float64
	phaseDelta float64
	phase      float64
	framesLeft atomic.Int64
}

// Engine is the shared state between the key resolver and the audio callback.
// The voice table is fixed at construction and lives as long as the engine.
type Engine struct {
	*Props
	voices    []voice
	amplitude *atomic.Value
	mix       []float64
}

// NewEngine creates an engine with one silent voice per frequency.
func NewEngine(freqs []float64) *Engine {
	props := NewProps()
	e := &Engine{
		Props:     props,
		voices:    make([]voice, len(freqs)),
		amplitude: props.MustRegister(PropAmplitude, setAmplitude, defaultAmplitude),
		mix:       make([]float64, BufferSize),
	}
	for i, f := range freqs {
		e.voices[i].freq = f
		e.voices[i].phaseDelta = f / SampleRate
	}
	return e
}

func (e *Engine) NumVoices() int { return len(e.voices) }

// Trigger arms a voice with the full note duration. A voice that is still
// sounding keeps its phase.
func (e *Engine) Trigger(v int) {
	e.voices[v].framesLeft.Store(SoundDurationFrames)
}

// FramesRemaining reports how many frames voice v has left before going silent.
func (e *Engine) FramesRemaining(v int) int {
	return int(e.voices[v].framesLeft.Load())
}

// Active reports the number of voices currently sounding.
func (e *Engine) Active() int {
	var n int
	for i := range e.voices {
		if e.voices[i].framesLeft.Load() > 0 {
			n++
		}
	}
	return n
}

// Phase returns the oscillator phase of voice v. It is owned by the audio
// thread, so only call it while no stream is running.
func (e *Engine) Phase(v int) float64 {
	return e.voices[v].phase
}

// Process renders len(out) mono samples. It runs on the audio thread and
// does not allocate, lock or block.
func (e *Engine) Process(out []float32) {
	for n := 0; n < len(out); n += len(e.mix) {
		end := n + len(e.mix)
		if end > len(out) {
			end = len(out)
		}
		e.process(out[n:end])
	}
}

func (e *Engine) process(out []float32) {
	amp := e.amplitude.Load().(float64)
	mix := e.mix[:len(out)]
	for i := range mix {
		mix[i] = 0
	}
	for i := range e.voices {
		e.voices[i].process(mix, amp)
	}
	for i, sample := range mix {
		out[i] = float32(sample * MasterScale)
	}
}

// process adds the voice's contribution to buf. The frame counter is read
// once per buffer; if a trigger lands while rendering, the swap fails and the
// new note starts at full duration on the next buffer.
func (v *voice) process(buf []float64, amp float64) {
	left := v.framesLeft.Load()
	if left <= 0 {
		return
	}
	n := int64(len(buf))
	if left < n {
		n = left
	}
	remaining := left
	for i := range buf[:n] {
		fade := float64(remaining) / SoundDurationFrames
		buf[i] += fade * amp * math.Sin(twoPi*v.phase)
		v.phase += v.phaseDelta
		if v.phase >= 1.0 {
			v.phase -= 1.0
		}
		remaining--
	}
	v.framesLeft.CompareAndSwap(left, remaining)
}
