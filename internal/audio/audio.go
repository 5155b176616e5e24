// Package audio sonifies a particle field with an ambient pad. Motion
// opens the filter, resets thicken the echo and the pointer pans the mix.
package audio

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/dotfield/internal/world"
	"go.uber.org/zap"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Gm7 add9: G2, Bb2, D3, F3, A3.
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

type target struct {
	energy    float64
	resetting float64
	pan       float64
}

// Processor renders the pad and follows the field through OnStep.
type Processor struct {
	stream *portaudio.Stream
	log    *zap.Logger

	mu              sync.Mutex
	target          target
	bass, mid, high float64

	// Synthesis state, owned by the audio callback.
	time         float64
	filter       [2]float64
	delay        [2][]float64
	head         int
	energySmooth float64
	echoSmooth   float64
	panSmooth    float64
	spectrum     []complex128
	maxLevel     float64
}

func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	delayLen := int(float64(SampleRate) * 0.6)
	return &Processor{
		log:      logger,
		delay:    [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		spectrum: make([]complex128, BufferSize),
		maxLevel: 0.1,
	}
}

// Start opens the default output device.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Render)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}
	a.stream = stream
	a.log.Info("audio started", zap.Int("sample_rate", SampleRate), zap.Int("buffer", BufferSize))
	return nil
}

func (a *Processor) Stop() {
	if a.stream == nil {
		return
	}
	if err := a.stream.Stop(); err != nil {
		a.log.Warn("audio stop", zap.Error(err))
	}
	a.stream.Close()
	portaudio.Terminate()
	a.stream = nil
}

func (a *Processor) Active() bool { return a.stream != nil }

// OnStep reads kinetic energy, the resetting share and the pointer from a
// frame. It runs on the simulation goroutine.
func (a *Processor) OnStep(f *world.Frame) {
	e := 0.0
	for _, p := range f.Particles {
		v := p.Vel()
		e += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
	share := 0.0
	if n := len(f.Particles); n > 0 {
		share = float64(f.Report.Resetting) / float64(n)
	}

	a.mu.Lock()
	a.target = target{energy: e, resetting: share, pan: f.Pointer.X}
	a.mu.Unlock()
}

// Levels returns smoothed bass, mid and high band levels in [0, 1] of the
// rendered output.
func (a *Processor) Levels() (bass, mid, high float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bass, a.mid, a.high
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Render fills a non-interleaved stereo block. It is the stream callback.
func (a *Processor) Render(out [][]float32) {
	a.mu.Lock()
	t := a.target
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	const vol = 0.25

	for i := range out[0] {
		a.energySmooth = a.energySmooth*0.9995 + t.energy*0.0005
		a.echoSmooth = a.echoSmooth*0.9995 + t.resetting*0.0005
		a.panSmooth = a.panSmooth*0.999 + t.pan*0.001

		// Energy opens the filter from 300Hz up to 1200Hz.
		cutoff := 300.0 + math.Min(a.energySmooth/5.0, 900.0)
		feedback := 0.5 + 0.3*a.echoSmooth

		sampleL, sampleR := 0.0, 0.0
		g := 1.0 / float64(len(chord))
		for j, f := range chord {
			lfo := math.Sin(a.time*0.2 + float64(j))
			sampleL += triangle(a.time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(a.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		a.filter[0] = lpf(sampleL, cutoff, dt, a.filter[0])
		a.filter[1] = lpf(sampleR, cutoff, dt, a.filter[1])

		delayL := a.delay[0][a.head]
		delayR := a.delay[1][a.head]
		mixL := a.filter[0] + delayL*0.3 + delayR*0.1
		mixR := a.filter[1] + delayR*0.3 + delayL*0.1
		a.delay[0][a.head] = mixL * feedback
		a.delay[1][a.head] = mixR * feedback
		a.head = (a.head + 1) % len(a.delay[0])

		gl, gr := 1-0.5*a.panSmooth, 1+0.5*a.panSmooth
		out[0][i] = float32(mixL * vol * gl)
		if len(out) > 1 {
			out[1][i] = float32(mixR * vol * gr)
		}
		a.time += dt
	}

	a.analyze(out[0])
}

// analyze buckets the spectrum of one channel into three bands with
// automatic gain.
func (a *Processor) analyze(block []float32) {
	n := min(len(block), len(a.spectrum))
	for i := range a.spectrum {
		a.spectrum[i] = 0
	}
	for i := 0; i < n; i++ {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		a.spectrum[i] = complex(float64(block[i])*window, 0)
	}
	spectrum := fft.FFT(a.spectrum)

	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 0; i < BufferSize/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 5:
			bassSum += mag
		case i < 46:
			midSum += mag
		case i < 460:
			highSum += mag
		}
	}

	peak := math.Max(bassSum/100.0, math.Max(midSum/500.0, highSum/1000.0))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0
	if a.maxLevel > 0.001 {
		gain = math.Min(1.0/a.maxLevel, 50.0)
	}

	a.mu.Lock()
	a.bass = a.bass*0.9 + math.Min(bassSum/100.0*gain, 1.0)*0.1
	a.mid = a.mid*0.9 + math.Min(midSum/500.0*gain, 1.0)*0.1
	a.high = a.high*0.9 + math.Min(highSum/1000.0*gain, 1.0)*0.1
	a.mu.Unlock()
}
