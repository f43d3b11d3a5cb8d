package picking

import "sort"

// DefaultDecodeThreshold is the ceiling on the median per-character error of
// an automated decode. Candidates at or above it are dropped silently so the
// picker is not flooded with camera noise.
const DefaultDecodeThreshold = 0.25

// Candidate is one best-effort reading emitted by the external decoder for a
// single frame, with a per-character error estimate for each position.
type Candidate struct {
	Code       string    `json:"code"`
	CharErrors []float64 `json:"char_errors"`
}

// Median returns the median of the samples: sort ascending, take the middle
// value for odd counts, the mean of the two middle values for even counts.
// An empty slice has no median and returns ErrNoErrorSamples.
func Median(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoErrorSamples
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Gate filters automated decode candidates by median character error.
type Gate struct {
	threshold float64
}

// NewGate constructs a quality gate. A non-positive threshold falls back to
// the default.
func NewGate(threshold float64) Gate {
	if threshold <= 0 {
		threshold = DefaultDecodeThreshold
	}
	return Gate{threshold: threshold}
}

// Check accepts or rejects one candidate. Candidates without error samples
// are rejected outright.
func (g Gate) Check(c Candidate) error {
	median, err := Median(c.CharErrors)
	if err != nil {
		return err
	}
	if median >= g.threshold {
		return ErrLowConfidence
	}
	return nil
}

// Filter returns the codes of all candidates passing the gate, in input
// order. An empty result means the whole frame is discarded.
func (g Gate) Filter(candidates []Candidate) []string {
	var codes []string
	for _, c := range candidates {
		if g.Check(c) == nil {
			codes = append(codes, c.Code)
		}
	}
	return codes
}
