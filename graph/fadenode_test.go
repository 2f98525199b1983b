package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/thomas-dumonet/tracktion-engine/fade"
	"github.com/thomas-dumonet/tracktion-engine/graph"
	"github.com/thomas-dumonet/tracktion-engine/mock"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

func TestFadeConstructorPanicsOnEmptyRanges(t *testing.T) {
	assert.Panics(t, func() {
		graph.NewFadeInOut(graph.Own(mock.Constant(1, 1)), graph.NewPlayHead(),
			signal.Time(0, 0), signal.Time(0, 0), fade.Linear, fade.Linear, false)
	})
}

// A linear fade-in over [0, 4800) at 48kHz with 512-sample blocks must scale
// sample i by exactly i/4800, and samples at or past 4800 must come through
// untouched.
func TestFadeBoundaryExactness(t *testing.T) {
	const sampleRate = 48000.0
	const blockSize = 512
	const fadeLength = 4800

	n := graph.NewFadeInOut(graph.Own(mock.Constant(1, 1)), graph.NewPlayHead(),
		signal.Time(0, 0.1), signal.Time(0, 0), fade.Linear, fade.Linear, false)
	out := renderAudio(t, n, graph.Config{SampleRate: sampleRate, BlockSize: blockSize}, 10)

	for i, v := range out {
		if i < fadeLength {
			assert.InDelta(t, float64(i)/fadeLength, v, 1e-9, "sample %d", i)
		} else {
			assert.Equal(t, 1.0, v, "sample %d past fade end", i)
		}
	}
}

func TestFadePassthroughWhenStopped(t *testing.T) {
	playHead := graph.NewPlayHead()
	playHead.Stop()

	source := &mock.Source{
		Channels: 1,
		Sample:   func(int64) float64 { return 0.7 },
		Messages: []mock.Message{{Sample: 3, Message: gomidi.NoteOn(0, 64, 90)}},
	}
	n := graph.NewFadeInOut(graph.Own(source), playHead,
		signal.Time(0, 0.1), signal.Time(0, 0), fade.Linear, fade.Linear, true)

	player := graph.NewPlayer(n, graph.Config{SampleRate: 44100, BlockSize: 32})
	player.Prepare()
	out := player.Process()

	for _, v := range out.Audio[0] {
		assert.Equal(t, 0.7, v)
	}
	assert.Equal(t, 1, out.Midi.Len())
	assert.Equal(t, gomidi.NoteOn(0, 64, 90), out.Midi.Events()[0].Message)
}

func TestFadeOutsideRangeIsPassthrough(t *testing.T) {
	// Fade lies a second into the future; early blocks must be bit-identical
	// to the input.
	n := graph.NewFadeInOut(graph.Own(mock.Constant(2, 0.3)), graph.NewPlayHead(),
		signal.Time(1.0, 1.1), signal.Time(0, 0), fade.Linear, fade.Linear, true)
	out := renderAudio(t, n, graph.Config{SampleRate: 44100, BlockSize: 64}, 4)

	for i, v := range out {
		assert.Equal(t, 0.3, v, "sample %d", i)
	}
}

// Chunking must not change the envelope: any block decomposition produces
// the amplitude a single whole-range application would.
func TestFadeBlockSizeInvariance(t *testing.T) {
	const sampleRate = 8000.0
	const total = 1200

	render := func(blockSize int) []float64 {
		n := graph.NewFadeInOut(graph.Own(mock.Constant(1, 1)), graph.NewPlayHead(),
			signal.Time(0, 0.05), signal.Time(0.07, 0.12), fade.Linear, fade.Linear, false)
		return renderAudio(t, n, graph.Config{SampleRate: sampleRate, BlockSize: blockSize}, total/blockSize)
	}

	expected := func(i int) float64 {
		switch {
		case i < 400: // fade-in [0, 400)
			return float64(i) / 400
		case i < 560: // between fades
			return 1
		case i < 960: // fade-out [560, 960)
			return 1 - float64(i-560)/400
		default: // past fade-out, passthrough stands
			return 1
		}
	}

	for _, blockSize := range []int{40, 60, 120} {
		out := render(blockSize)
		for i, v := range out {
			assert.InDelta(t, expected(i), v, 1e-9, "block size %d, sample %d", blockSize, i)
		}
	}
}

func TestFadeOutClearsExtraSamples(t *testing.T) {
	// With clearExtraSamples, everything past the fade-out end is silenced
	// in blocks the fade touches.
	const sampleRate = 1000.0
	n := graph.NewFadeInOut(graph.Own(mock.Constant(1, 1)), graph.NewPlayHead(),
		signal.Time(0, 0), signal.Time(0.1, 0.2), fade.Linear, fade.Linear, true)
	out := renderAudio(t, n, graph.Config{SampleRate: sampleRate, BlockSize: 64}, 4)

	for i, v := range out {
		switch {
		case i < 100:
			assert.Equal(t, 1.0, v, "sample %d before fade-out", i)
		case i < 200:
			assert.InDelta(t, 1-float64(i-100)/100, v, 1e-9, "sample %d in fade-out", i)
		case i < 256: // cleared by the block containing the fade end
			assert.Equal(t, 0.0, v, "sample %d past fade-out", i)
		}
	}
}

func TestFadePropertiesPassThrough(t *testing.T) {
	source := mock.Constant(2, 1)
	source.Latency = 42
	n := graph.NewFadeInOut(graph.Own(source), graph.NewPlayHead(),
		signal.Time(0, 1), signal.Time(0, 0), fade.Linear, fade.Linear, false)

	props := n.Properties()
	assert.Equal(t, 2, props.Channels)
	assert.Equal(t, 42, props.Latency)
	assert.True(t, props.HasAudio)
}
