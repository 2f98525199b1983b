package signal

import "math"

// SampleRange is a half-open [Start, End) span of samples.
type SampleRange struct {
	Start, End int64
}

// Range returns the [start, end) sample range.
func Range(start, end int64) SampleRange {
	return SampleRange{Start: start, End: end}
}

// RangeWithLength returns the sample range starting at start with the given
// number of samples.
func RangeWithLength(start int64, length int) SampleRange {
	return SampleRange{Start: start, End: start + int64(length)}
}

// Length returns the number of samples in the range.
func (r SampleRange) Length() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range contains no samples.
func (r SampleRange) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether the sample position lies within the range.
func (r SampleRange) Contains(pos int64) bool {
	return pos >= r.Start && pos < r.End
}

// Intersects reports whether the two ranges share at least one sample.
func (r SampleRange) Intersects(other SampleRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the overlapping part of the two ranges. The result is
// empty if they do not intersect.
func (r SampleRange) Intersect(other SampleRange) SampleRange {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if end < start {
		end = start
	}
	return SampleRange{Start: start, End: end}
}

// TimeRange is a half-open [Start, End) span in seconds.
type TimeRange struct {
	Start, End float64
}

// Time returns the [start, end) time range in seconds.
func Time(start, end float64) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Length returns the duration of the range in seconds.
func (t TimeRange) Length() float64 {
	if t.End < t.Start {
		return 0
	}
	return t.End - t.Start
}

// Empty reports whether the range has no duration.
func (t TimeRange) Empty() bool {
	return t.End <= t.Start
}

// ToSamples converts the time range to a sample range at the given sample
// rate, rounding each edge to the nearest sample.
func (t TimeRange) ToSamples(sampleRate float64) SampleRange {
	return SampleRange{
		Start: int64(math.Round(t.Start * sampleRate)),
		End:   int64(math.Round(t.End * sampleRate)),
	}
}
