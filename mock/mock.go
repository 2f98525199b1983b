// Package mock provides configurable source nodes for tests and examples.
package mock

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/thomas-dumonet/tracktion-engine/graph"
	"github.com/thomas-dumonet/tracktion-engine/midi"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// Message schedules a MIDI message at an absolute timeline sample position.
type Message struct {
	Sample  int64
	Message gomidi.Message
}

// Source is a leaf node producing a deterministic audio signal and scheduled
// MIDI events. The Sample func maps an absolute sample position to a value
// written on every channel; nil produces silence.
type Source struct {
	graph.Base
	Channels int
	Latency  int
	Sample   func(pos int64) float64
	Messages []Message

	id         string
	sampleRate float64
	pos        int64
}

// Constant returns a source producing value on every sample.
func Constant(channels int, value float64) *Source {
	return &Source{
		Channels: channels,
		Sample:   func(int64) float64 { return value },
	}
}

// Impulse returns a source producing a single unit sample at the given
// position.
func Impulse(channels int, at int64) *Source {
	return &Source{
		Channels: channels,
		Sample: func(pos int64) float64 {
			if pos == at {
				return 1
			}
			return 0
		},
	}
}

func (s *Source) Properties() graph.NodeProperties {
	if s.id == "" {
		s.id = graph.NewNodeID()
	}
	return graph.NodeProperties{
		HasAudio: s.Channels > 0,
		HasMidi:  len(s.Messages) > 0,
		Channels: s.Channels,
		Latency:  s.Latency,
		NodeID:   s.id,
	}
}

func (s *Source) Inputs() []graph.Node { return nil }

func (s *Source) Ready() bool { return true }

func (s *Source) Prepare(cfg graph.Config) {
	s.sampleRate = cfg.SampleRate
	s.pos = 0
}

func (s *Source) Render(pc graph.Context) {
	numSamples := int(pc.Stream.Length())
	start := s.pos

	if s.Sample != nil {
		audio := pc.Output.Audio
		for i := 0; i < numSamples; i++ {
			value := s.Sample(start + int64(i))
			for c := range audio {
				audio[c][i] = value
			}
		}
	}

	block := signal.RangeWithLength(start, numSamples)
	for _, m := range s.Messages {
		if block.Contains(m.Sample) {
			pc.Output.Midi.Add(midi.Event{
				Time:    float64(m.Sample-start) / s.sampleRate,
				Message: m.Message,
			})
		}
	}

	s.pos += int64(numSamples)
}
