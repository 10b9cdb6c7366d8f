package voice

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
)

const (
	// InputSampleRate is sample rate expected by inference session
	InputSampleRate = 16000
	// OutputSampleRate is sample rate of audio produced by inference session
	OutputSampleRate = 24000
)

var errPipelineClosed = errors.New("audio pipeline is closed")

// Format is encoding of audio samples sent by client
type Format string

const (
	// FormatPCM16 is little-endian signed 16-bit samples
	FormatPCM16 Format = "pcm16"
	// FormatFloat32 is little-endian 32-bit float samples in [-1, 1]
	FormatFloat32 Format = "float32"
)

// Frame is chunk of mono audio
type Frame struct {
	Format Format
	Data   []byte
}

// Float32ToPCM16 converts float samples to signed 16-bit ones, out of range samples are clamped
func Float32ToPCM16(data []byte) ([]byte, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("float32 frame length %d isn't multiple of 4", len(data))
	}

	out := make([]byte, len(data)/2)
	for i := 0; i < len(data)/4; i++ {
		v := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))) * 32768
		if math.IsNaN(v) {
			v = 0
		}

		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out, nil
}

// audioPipeline is format stage between client and inference session
type audioPipeline struct {
	name       string
	sampleRate int

	mu     sync.Mutex
	closed bool
	bytes  int
}

func newAudioPipeline(name string, sampleRate int) *audioPipeline {
	return &audioPipeline{name: name, sampleRate: sampleRate}
}

// Process normalizes frame to PCM16
func (p *audioPipeline) Process(frame Frame) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errPipelineClosed
	}

	var pcm []byte
	switch frame.Format {
	case FormatPCM16, "":
		if len(frame.Data)%2 != 0 {
			return nil, fmt.Errorf("pcm16 frame length %d is odd", len(frame.Data))
		}
		pcm = frame.Data
	case FormatFloat32:
		var err error
		if pcm, err = Float32ToPCM16(frame.Data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported audio format %s", frame.Format)
	}

	p.bytes += len(pcm)
	return pcm, nil
}

// MIMEType describes processed audio
func (p *audioPipeline) MIMEType() string {
	return fmt.Sprintf("audio/pcm;rate=%d", p.sampleRate)
}

// Duration returns seconds of audio passed through pipeline
func (p *audioPipeline) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.bytes/2) / float64(p.sampleRate)
}

func (p *audioPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("%s pipeline is already closed", p.name)
	}
	p.closed = true
	return nil
}
