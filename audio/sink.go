package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source renders mono samples on the audio thread.
type Source interface {
	Process(out []float32)
}

// Backend is an audio output stream that pulls samples from a Source.
type Backend interface {
	Start() error
	Stop() error
	Close() error
}

// Sink plays a Source through the default PortAudio output device.
type Sink struct {
	source Source
	stream *portaudio.Stream
}

func NewSink(source Source) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	s := Sink{source: source}
	stream, err := portaudio.OpenDefaultStream(0, 1, SampleRate, BufferSize, s.source.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio: open stream: %w", err)
	}
	s.stream = stream
	return &s, nil
}

func (s *Sink) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("portaudio: start stream: %w", err)
	}
	return nil
}

func (s *Sink) Stop() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("portaudio: stop stream: %w", err)
	}
	return nil
}

// Close releases the stream and terminates PortAudio.
func (s *Sink) Close() error {
	var errs []error
	if err := s.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio: close stream: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio: terminate: %w", err))
	}
	return errors.Join(errs...)
}
