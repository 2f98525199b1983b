// Package fade provides amplitude envelope curves applied over sample spans
// of audio buffers. Curves are keyed by Shape and interpolate a crossfade
// progress alpha, where 0 is silent and 1 is full amplitude.
package fade

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// Shape identifies a fade curve.
type Shape int

const (
	Linear Shape = iota
	Convex
	Concave
	SCurve
)

// Gain returns the amplitude for crossfade progress alpha. Alpha outside
// [0, 1] is clamped.
func (s Shape) Gain(alpha float64) float64 {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	switch s {
	case Convex:
		return math.Sin(alpha * math.Pi / 2)
	case Concave:
		return 1 - math.Cos(alpha*math.Pi/2)
	case SCurve:
		return 0.5 - 0.5*math.Cos(alpha*math.Pi)
	default:
		return alpha
	}
}

// Gains fills dst with per-sample amplitudes interpolating crossfade
// progress from alpha1 towards alpha2 across len(dst) samples. Sample i
// carries progress alpha1 + (alpha2-alpha1)*i/len(dst): the span ends one
// step short of alpha2, so consecutive block-sized spans chain into a single
// continuous ramp without repeating a gain step at block edges.
func (s Shape) Gains(dst []float64, alpha1, alpha2 float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	step := (alpha2 - alpha1) / float64(n)
	for i := range dst {
		dst[i] = s.Gain(alpha1 + step*float64(i))
	}
}

// Apply scales buf's samples in [offset, offset+length) on every channel by
// the shape's gains from alpha1 to alpha2. The scratch slice holds the gain
// ramp and must have at least length samples; passing nil allocates one,
// which is fine offline but not on a real-time path.
func Apply(buf signal.Float64, offset, length int, s Shape, alpha1, alpha2 float64, scratch []float64) {
	if length <= 0 {
		return
	}
	if len(scratch) < length {
		scratch = make([]float64, length)
	}
	ramp := scratch[:length]
	s.Gains(ramp, alpha1, alpha2)
	for i := range buf {
		channel := buf[i]
		if offset >= len(channel) {
			continue
		}
		end := offset + length
		if end > len(channel) {
			end = len(channel)
		}
		vecmath.MulBlockInPlace(channel[offset:end], ramp[:end-offset])
	}
}
