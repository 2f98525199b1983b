package midi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/thomas-dumonet/tracktion-engine/midi"
)

func event(time float64) midi.Event {
	return midi.Event{Time: time, Message: gomidi.NoteOn(0, 60, 100)}
}

func times(b *midi.Buffer) []float64 {
	result := make([]float64, 0, b.Len())
	for _, e := range b.Events() {
		result = append(result, e.Time)
	}
	return result
}

func TestAddKeepsOrder(t *testing.T) {
	b := midi.NewBuffer(8)
	for _, time := range []float64{0.5, 0.1, 0.3, 0.1, 0.0} {
		b.Add(event(time))
	}
	assert.Equal(t, []float64{0.0, 0.1, 0.1, 0.3, 0.5}, times(b))
}

func TestAddStableForEqualTimes(t *testing.T) {
	b := midi.NewBuffer(4)
	b.Add(midi.Event{Time: 0.2, Message: gomidi.NoteOn(0, 60, 100)})
	b.Add(midi.Event{Time: 0.2, Message: gomidi.NoteOff(0, 60)})

	events := b.Events()
	assert.Equal(t, gomidi.NoteOn(0, 60, 100), events[0].Message)
	assert.Equal(t, gomidi.NoteOff(0, 60), events[1].Message)
}

func TestMergeFrom(t *testing.T) {
	b := midi.NewBuffer(8)
	b.Add(event(0.1))
	b.Add(event(0.4))

	source := midi.NewBuffer(8)
	source.Add(event(0.2))
	source.Add(event(0.5))

	b.MergeFrom(source)
	assert.Equal(t, []float64{0.1, 0.2, 0.4, 0.5}, times(b))
	// source untouched
	assert.Equal(t, []float64{0.2, 0.5}, times(source))
}

func TestMergeFromWithOffset(t *testing.T) {
	b := midi.NewBuffer(8)
	source := midi.NewBuffer(8)
	source.Add(event(0.0))
	source.Add(event(0.25))

	b.MergeFromWithOffset(source, 1.0)
	assert.Equal(t, []float64{1.0, 1.25}, times(b))
}

func TestPartitionInto(t *testing.T) {
	tests := []struct {
		pending []float64
		limit   float64
		emitted []float64
		kept    []float64
	}{
		{
			pending: []float64{0.1, 0.2, 0.3},
			limit:   0.2,
			emitted: []float64{0.1, 0.2}, // limit is inclusive
			kept:    []float64{0.3},
		},
		{
			pending: []float64{0.5, 0.6},
			limit:   0.1,
			emitted: []float64{},
			kept:    []float64{0.5, 0.6},
		},
		{
			pending: []float64{0.0, 0.1},
			limit:   1.0,
			emitted: []float64{0.0, 0.1},
			kept:    []float64{},
		},
	}

	for _, test := range tests {
		pending := midi.NewBuffer(8)
		for _, time := range test.pending {
			pending.Add(event(time))
		}
		out := midi.NewBuffer(8)

		moved := pending.PartitionInto(out, test.limit)
		assert.Equal(t, len(test.emitted), moved)
		assert.Equal(t, test.emitted, times(out))
		assert.Equal(t, test.kept, times(pending))
	}
}

func TestShiftTimes(t *testing.T) {
	b := midi.NewBuffer(8)
	b.Add(event(0.3))
	b.Add(event(0.5))

	b.ShiftTimes(-0.3)
	assert.InDelta(t, 0.0, b.Events()[0].Time, 1e-12)
	assert.InDelta(t, 0.2, b.Events()[1].Time, 1e-12)
}

func TestClearKeepsStorage(t *testing.T) {
	b := midi.NewBuffer(8)
	b.Add(event(0.1))
	b.Clear()
	assert.Equal(t, 0, b.Len())
}
