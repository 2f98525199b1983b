package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomas-dumonet/tracktion-engine/signal"
)

func TestSampleRange(t *testing.T) {
	r := signal.Range(10, 20)
	assert.Equal(t, int64(10), r.Length())
	assert.False(t, r.Empty())
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(19))
	assert.False(t, r.Contains(20))

	assert.True(t, signal.Range(0, 0).Empty())
	assert.Equal(t, int64(0), signal.Range(5, 3).Length())
}

func TestSampleRangeIntersects(t *testing.T) {
	tests := []struct {
		a, b       signal.SampleRange
		intersects bool
	}{
		{signal.Range(0, 10), signal.Range(5, 15), true},
		{signal.Range(0, 10), signal.Range(10, 20), false}, // touching, half-open
		{signal.Range(0, 10), signal.Range(0, 10), true},
		{signal.Range(0, 0), signal.Range(0, 10), false}, // empty never intersects
		{signal.Range(20, 30), signal.Range(0, 10), false},
	}

	for _, test := range tests {
		assert.Equal(t, test.intersects, test.a.Intersects(test.b))
		assert.Equal(t, test.intersects, test.b.Intersects(test.a))
	}
}

func TestSampleRangeIntersect(t *testing.T) {
	assert.Equal(t, signal.Range(5, 10), signal.Range(0, 10).Intersect(signal.Range(5, 15)))
	assert.True(t, signal.Range(0, 10).Intersect(signal.Range(20, 30)).Empty())
}

func TestTimeRangeToSamples(t *testing.T) {
	tests := []struct {
		timeRange  signal.TimeRange
		sampleRate float64
		expected   signal.SampleRange
	}{
		{signal.Time(0, 0.1), 48000, signal.Range(0, 4800)},
		{signal.Time(0.5, 1.0), 44100, signal.Range(22050, 44100)},
		{signal.Time(0, 0), 48000, signal.Range(0, 0)},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.timeRange.ToSamples(test.sampleRate))
	}

	assert.True(t, signal.Time(1, 1).Empty())
	assert.False(t, signal.Time(0, 1).Empty())
}
