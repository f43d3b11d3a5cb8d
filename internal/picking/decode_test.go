package picking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	m, err := Median([]float64{0.1, 0.3, 0.5})
	require.NoError(t, err)
	require.InDelta(t, 0.3, m, 1e-9)

	m, err = Median([]float64{0.1, 0.4})
	require.NoError(t, err)
	require.InDelta(t, 0.25, m, 1e-9)

	// Order of samples must not matter.
	m, err = Median([]float64{0.5, 0.1, 0.3})
	require.NoError(t, err)
	require.InDelta(t, 0.3, m, 1e-9)

	m, err = Median([]float64{0.2})
	require.NoError(t, err)
	require.InDelta(t, 0.2, m, 1e-9)

	_, err = Median(nil)
	require.ErrorIs(t, err, ErrNoErrorSamples)
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	samples := []float64{0.5, 0.1, 0.3}
	_, err := Median(samples)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.1, 0.3}, samples)
}

func TestGateCheck(t *testing.T) {
	gate := NewGate(0.25)

	require.NoError(t, gate.Check(Candidate{Code: "123", CharErrors: []float64{0.1, 0.2, 0.1}}))
	require.ErrorIs(t, gate.Check(Candidate{Code: "123", CharErrors: []float64{0.3, 0.4}}), ErrLowConfidence)
	// A median exactly at threshold is rejected: accept only below 0.25.
	require.ErrorIs(t, gate.Check(Candidate{Code: "123", CharErrors: []float64{0.25}}), ErrLowConfidence)
	// Zero samples means automatic rejection.
	require.ErrorIs(t, gate.Check(Candidate{Code: "123"}), ErrNoErrorSamples)
}

func TestGateFilterKeepsInputOrder(t *testing.T) {
	gate := NewGate(0.25)
	codes := gate.Filter([]Candidate{
		{Code: "bad", CharErrors: []float64{0.9}},
		{Code: "first", CharErrors: []float64{0.01}},
		{Code: "empty"},
		{Code: "second", CharErrors: []float64{0.1, 0.2}},
	})
	require.Equal(t, []string{"first", "second"}, codes)
}

func TestNewGateDefaultsThreshold(t *testing.T) {
	gate := NewGate(0)
	require.ErrorIs(t, gate.Check(Candidate{Code: "x", CharErrors: []float64{0.3}}), ErrLowConfidence)
	require.NoError(t, gate.Check(Candidate{Code: "x", CharErrors: []float64{0.2}}))
}

func BenchmarkGateFilter(b *testing.B) {
	gate := NewGate(DefaultDecodeThreshold)
	frame := []Candidate{
		{Code: "7798123456789", CharErrors: []float64{0.31, 0.28, 0.4, 0.22, 0.35, 0.3, 0.27, 0.33, 0.29, 0.26, 0.38, 0.24, 0.3}},
		{Code: "7791234500011", CharErrors: []float64{0.05, 0.11, 0.02, 0.08, 0.09, 0.04, 0.06, 0.1, 0.03, 0.07, 0.05, 0.08, 0.02}},
		{Code: "7791234500028", CharErrors: []float64{0.21, 0.18, 0.24, 0.2, 0.22, 0.19, 0.23, 0.2, 0.21, 0.18, 0.24, 0.19, 0.22}},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		gate.Filter(frame)
	}
}
