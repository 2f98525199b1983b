// Package signal provides the buffer model for the processing graph. It
// allows to:
//	- manipulate non-interleaved float64 audio blocks
//	- describe half-open sample and time spans
//	- convert float signals to interleaved ints for rendering
package signal

import (
	"math"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// Float64 is a non-interleaved float64 signal: one slice of samples per
// channel.
type Float64 [][]float64

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// InterInt is an interleaved int signal.
type InterInt struct {
	Data        []int
	NumChannels int
	BitDepth
}

// BitDepth contains values required for int-to-float and backward conversion.
type BitDepth int

// devider is used when int to float conversion is done.
func (bitDepth BitDepth) devider() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8
	case BitDepth16:
		return math.MaxInt16
	case BitDepth32:
		return math.MaxInt32
	default:
		return 1
	}
}

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8 - 1
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// DurationOf returns time duration of passed samples for this sample rate.
func DurationOf(sampleRate float64, samples int64) time.Duration {
	return time.Duration(float64(samples) / sampleRate * float64(time.Second))
}

// EmptyFloat64 returns a zeroed buffer of the specified dimensions.
func EmptyFloat64(numChannels int, bufferSize int) Float64 {
	result := make([][]float64, numChannels)
	for i := range result {
		result[i] = make([]float64, bufferSize)
	}
	return result
}

// NumChannels returns number of channels in this sample slice.
func (floats Float64) NumChannels() int {
	return len(floats)
}

// Size returns number of samples in a single channel of this sample slice.
func (floats Float64) Size() int {
	if floats.NumChannels() == 0 {
		return 0
	}
	return len(floats[0])
}

// Clear zeroes all samples in the buffer.
func (floats Float64) Clear() {
	for i := range floats {
		for j := range floats[i] {
			floats[i][j] = 0
		}
	}
}

// ClearRegion zeroes samples in [from, to) on every channel.
func (floats Float64) ClearRegion(from, to int) {
	for i := range floats {
		channel := floats[i]
		end := to
		if end > len(channel) {
			end = len(channel)
		}
		for j := from; j < end; j++ {
			channel[j] = 0
		}
	}
}

// CopyFrom overwrites the buffer with samples from source. Channels and
// samples beyond the smaller of the two buffers are left untouched.
func (floats Float64) CopyFrom(source Float64) {
	for i := 0; i < len(floats) && i < len(source); i++ {
		copy(floats[i], source[i])
	}
}

// Add sums source into the buffer sample-wise over min(channels) and
// min(sizes) of the two buffers.
func (floats Float64) Add(source Float64) {
	for i := 0; i < len(floats) && i < len(source); i++ {
		n := len(floats[i])
		if len(source[i]) < n {
			n = len(source[i])
		}
		vecmath.AddBlockInPlace(floats[i][:n], source[i][:n])
	}
}

// AsInterInt converts float64 signal to interleaved int.
func (floats Float64) AsInterInt(bitDepth BitDepth) []int {
	var numChannels int
	if numChannels = len(floats); numChannels == 0 {
		return nil
	}

	multiplier := float64(bitDepth.multiplier())

	ints := make([]int, len(floats[0])*numChannels)
	for j := range floats {
		for i := range floats[j] {
			ints[i*numChannels+j] = int(floats[j][i] * multiplier)
		}
	}
	return ints
}

// AsFloat64 converts interleaved int signal to float64.
func (ints InterInt) AsFloat64() Float64 {
	if ints.Data == nil || ints.NumChannels == 0 {
		return nil
	}
	floats := make([][]float64, ints.NumChannels)
	bufSize := int(math.Ceil(float64(len(ints.Data)) / float64(ints.NumChannels)))

	devider := float64(ints.BitDepth.devider())

	for i := range floats {
		floats[i] = make([]float64, bufSize)
		pos := 0
		for j := i; j < len(ints.Data); j = j + ints.NumChannels {
			floats[i][pos] = float64(ints.Data[j]) / devider
			pos++
		}
	}
	return floats
}
