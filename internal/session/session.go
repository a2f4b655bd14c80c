package session

import (
	"math"

	"github.com/mwaldner/genlab/internal/machine"
)

// Session is the mutable state of one simulation: the accumulated coil
// angle, elapsed time, and the append-only sample series. It is not safe
// for concurrent use; callers drive it from a single loop.
type Session struct {
	gen *machine.Generator

	angle   float64
	elapsed float64
	running bool

	times     []float64
	angles    []float64
	flux      []float64
	emf       []float64
	rectified []float64

	observers []Observer
	metrics   []Metric
}

func New(gen *machine.Generator) *Session {
	return &Session{
		gen:     gen,
		running: true,
	}
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

func (s *Session) Generator() *machine.Generator { return s.gen }
func (s *Session) Angle() float64                { return s.angle }
func (s *Session) Elapsed() float64              { return s.elapsed }
func (s *Session) Running() bool                 { return s.running }
func (s *Session) Len() int                      { return len(s.times) }

// Series accessors return the live backing slices; callers must treat
// them as read-only.
func (s *Session) Times() []float64     { return s.times }
func (s *Session) Angles() []float64    { return s.angles }
func (s *Session) Flux() []float64      { return s.flux }
func (s *Session) EMF() []float64       { return s.emf }
func (s *Session) Rectified() []float64 { return s.rectified }

// SetRunning toggles the run flag from outside (play/stop control).
func (s *Session) SetRunning(v bool) { s.running = v }

// SetAngle overrides the accumulated angle without advancing time.
func (s *Session) SetAngle(theta float64) { s.angle = theta }

// Step advances the coil by omega*dt, evaluates flux and the backward
// difference EMF, and appends one sample. The first sample carries a
// zero EMF since no previous flux exists yet.
func (s *Session) Step() {
	p := s.gen.Params

	s.angle += p.Omega * p.Dt
	s.elapsed += p.Dt

	phi := s.gen.Flux(s.angle)

	emf := 0.0
	if n := len(s.flux); n > 0 {
		emf = -(phi - s.flux[n-1]) / p.Dt
	}
	rect := math.Abs(emf)

	s.times = append(s.times, s.elapsed)
	s.angles = append(s.angles, s.angle)
	s.flux = append(s.flux, phi)
	s.emf = append(s.emf, emf)
	s.rectified = append(s.rectified, rect)

	sample := Sample{Time: s.elapsed, Angle: s.angle, Flux: phi, EMF: emf, Rectified: rect}
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, o := range s.observers {
		o.OnStep(sample)
	}
}

// RunFrames performs up to n consecutive steps. It is meant to be
// re-invoked by an external timer; once elapsed time exceeds the
// configured maximum the running flag drops and further calls no-op.
func (s *Session) RunFrames(n int) {
	if n <= 0 {
		n = DefaultFrameBatch
	}
	for i := 0; i < n && s.running; i++ {
		s.Step()
		if s.elapsed > s.gen.Params.MaxTime {
			s.running = false
		}
	}
}

// Reset clears angle, elapsed time and all series, and re-arms the run
// flag. Parameters keep their current values.
func (s *Session) Reset() {
	s.angle = 0
	s.elapsed = 0
	s.running = true
	s.times = s.times[:0]
	s.angles = s.angles[:0]
	s.flux = s.flux[:0]
	s.emf = s.emf[:0]
	s.rectified = s.rectified[:0]
	for _, m := range s.metrics {
		m.Reset()
	}
}
