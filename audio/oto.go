package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const bytesPerSample = 4

// OtoSink plays a Source through oto. Oto pulls bytes from the sink on its
// own goroutine, so Read has the same constraints as Source.Process.
type OtoSink struct {
	source Source
	ctx    *oto.Context
	player *oto.Player
	buf    []float32
}

var _ io.Reader = (*OtoSink)(nil)

func NewOtoSink(source Source) (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(BufferSize) * time.Second / SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("oto: new context: %w", err)
	}
	<-ready
	s := &OtoSink{
		source: source,
		ctx:    ctx,
		buf:    make([]float32, BufferSize),
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// Read fills p with little endian float32 samples.
func (s *OtoSink) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample
	for done := 0; done < n; {
		chunk := s.buf
		if n-done < len(chunk) {
			chunk = chunk[:n-done]
		}
		s.source.Process(chunk)
		for i, sample := range chunk {
			binary.LittleEndian.PutUint32(p[(done+i)*bytesPerSample:], math.Float32bits(sample))
		}
		done += len(chunk)
	}
	return n * bytesPerSample, nil
}

func (s *OtoSink) Start() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	s.player.Play()
	return nil
}

func (s *OtoSink) Stop() error {
	s.player.Pause()
	return nil
}

func (s *OtoSink) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("oto: close player: %w", err)
	}
	return nil
}
