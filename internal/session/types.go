package session

// Sample is one row of the recorded series: everything produced by a
// single step, index-aligned across the session history.
type Sample struct {
	Time      float64
	Angle     float64
	Flux      float64
	EMF       float64 // raw signed estimate, Faraday sign convention
	Rectified float64 // |EMF|, the commutated output
}

// Observer receives every sample as it is appended.
type Observer interface {
	OnStep(s Sample)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Result is the outcome of a batch run.
type Result struct {
	Times     []float64
	Angles    []float64
	Flux      []float64
	EMF       []float64
	Rectified []float64
	Steps     int
	Metrics   map[string]float64
}

// DefaultFrameBatch is the number of steps performed per animation frame
// when the caller does not override it.
const DefaultFrameBatch = 5
