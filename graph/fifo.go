package graph

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// audioFifo is a fixed-capacity circular delay line, one ring per channel.
// All storage is allocated at construction; write and read never allocate.
type audioFifo struct {
	buffer   signal.Float64
	capacity int
	readPos  int
	writePos int
	ready    int
}

func newAudioFifo(numChannels, capacity int) *audioFifo {
	assertf(capacity > 0, "fifo: capacity %d", capacity)
	return &audioFifo{
		buffer:   signal.EmptyFloat64(numChannels, capacity),
		capacity: capacity,
	}
}

func (f *audioFifo) numChannels() int { return f.buffer.NumChannels() }

// numReady returns the number of samples available for reading.
func (f *audioFifo) numReady() int { return f.ready }

// writeSilence appends numSamples of silence.
func (f *audioFifo) writeSilence(numSamples int) {
	assertf(f.ready+numSamples <= f.capacity, "fifo: silence overflow %d+%d > %d", f.ready, numSamples, f.capacity)
	first, second := f.splitAt(f.writePos, numSamples)
	for i := range f.buffer {
		channel := f.buffer[i]
		zero(channel[f.writePos : f.writePos+first])
		zero(channel[:second])
	}
	f.writePos = (f.writePos + numSamples) % f.capacity
	f.ready += numSamples
}

// write appends one block of samples from source.
func (f *audioFifo) write(source signal.Float64) {
	numSamples := source.Size()
	assertf(source.NumChannels() == f.numChannels(), "fifo: %d channels written to %d-channel fifo", source.NumChannels(), f.numChannels())
	assertf(f.ready+numSamples <= f.capacity, "fifo: overflow %d+%d > %d", f.ready, numSamples, f.capacity)
	first, second := f.splitAt(f.writePos, numSamples)
	for i := range f.buffer {
		copy(f.buffer[i][f.writePos:f.writePos+first], source[i][:first])
		copy(f.buffer[i][:second], source[i][first:])
	}
	f.writePos = (f.writePos + numSamples) % f.capacity
	f.ready += numSamples
}

// readAdding removes one block of samples and sums it into destination,
// supporting accumulation in mixing chains.
func (f *audioFifo) readAdding(destination signal.Float64) {
	numSamples := destination.Size()
	assertf(destination.NumChannels() == f.numChannels(), "fifo: %d channels read from %d-channel fifo", destination.NumChannels(), f.numChannels())
	assertf(f.ready >= numSamples, "fifo: underrun, %d ready < %d requested", f.ready, numSamples)
	first, second := f.splitAt(f.readPos, numSamples)
	for i := range f.buffer {
		vecmath.AddBlockInPlace(destination[i][:first], f.buffer[i][f.readPos:f.readPos+first])
		vecmath.AddBlockInPlace(destination[i][first:first+second], f.buffer[i][:second])
	}
	f.readPos = (f.readPos + numSamples) % f.capacity
	f.ready -= numSamples
}

// splitAt splits a span starting at pos into the contiguous part up to the
// end of the ring and the wrapped remainder.
func (f *audioFifo) splitAt(pos, numSamples int) (first, second int) {
	first = numSamples
	if pos+first > f.capacity {
		first = f.capacity - pos
	}
	return first, numSamples - first
}

func zero(samples []float64) {
	for i := range samples {
		samples[i] = 0
	}
}
