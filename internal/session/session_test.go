package session

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/mwaldner/genlab/internal/machine"
)

func classroomParams() machine.Parameters {
	return machine.Parameters{
		Omega:      2.0,
		PeakField:  0.8,
		CoilWidth:  1.0,
		CoilHeight: 1.0,
		Turns:      1.0,
		Dt:         0.05,
		MaxTime:    10.0,
	}
}

func TestSingleStep(t *testing.T) {
	g := NewWithT(t)

	sess := New(machine.New(classroomParams(), machine.CosineField{}))
	sess.Step()

	g.Expect(sess.Angle()).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(sess.Elapsed()).To(BeNumerically("~", 0.05, 1e-12))
	g.Expect(sess.Len()).To(Equal(1))

	// B_perp = 0.8*cos(0.1) ~ 0.796; with N=A=1 the flux equals it
	g.Expect(sess.Flux()[0]).To(BeNumerically("~", 0.8*math.Cos(0.1), 1e-12))
	g.Expect(sess.Flux()[0]).To(BeNumerically("~", 0.796, 1e-3))

	// no previous flux sample yet, so the estimate starts at zero
	g.Expect(sess.EMF()[0]).To(BeZero())
	g.Expect(sess.Rectified()[0]).To(BeZero())
}

func TestBackwardDifference(t *testing.T) {
	g := NewWithT(t)

	p := classroomParams()
	gen := machine.New(p, machine.CosineField{})
	sess := New(gen)

	sess.Step()
	sess.Step()

	phi0 := gen.Flux(p.Omega * p.Dt)
	phi1 := gen.Flux(2 * p.Omega * p.Dt)
	want := -(phi1 - phi0) / p.Dt

	g.Expect(sess.EMF()[1]).To(BeNumerically("~", want, 1e-12))
	g.Expect(sess.Rectified()[1]).To(BeNumerically("~", math.Abs(want), 1e-12))

	// the finite difference is not the analytic derivative at this dt
	analytic := gen.AnalyticEMF(sess.Angle())
	g.Expect(math.Abs(sess.EMF()[1] - analytic)).To(BeNumerically(">", 1e-6))
}

func TestSeriesInvariants(t *testing.T) {
	g := NewWithT(t)

	p := classroomParams()
	sess := New(machine.New(p, machine.CosineField{}))

	const steps = 137
	for i := 0; i < steps; i++ {
		sess.Step()
	}

	g.Expect(sess.Len()).To(Equal(steps))
	g.Expect(sess.Times()).To(HaveLen(steps))
	g.Expect(sess.Flux()).To(HaveLen(steps))
	g.Expect(sess.EMF()).To(HaveLen(steps))
	g.Expect(sess.Rectified()).To(HaveLen(steps))

	g.Expect(sess.Elapsed()).To(BeNumerically("~", float64(steps)*p.Dt, 1e-9))
	for i, tv := range sess.Times() {
		g.Expect(tv).To(BeNumerically("~", float64(i+1)*p.Dt, 1e-9))
	}
	for _, r := range sess.Rectified() {
		g.Expect(r).To(BeNumerically(">=", 0.0))
	}

	// stored angle accumulates unbounded
	g.Expect(sess.Angle()).To(BeNumerically("~", float64(steps)*p.Omega*p.Dt, 1e-9))
}

func TestRunFramesStopsAtMaxTime(t *testing.T) {
	g := NewWithT(t)

	sess := New(machine.New(classroomParams(), machine.CosineField{}))

	guard := 0
	for sess.Running() && guard < 1000 {
		sess.RunFrames(5)
		guard++
	}

	g.Expect(sess.Running()).To(BeFalse())
	// 10.0s at dt=0.05 stops at or just after the 200th step
	g.Expect(sess.Len()).To(BeNumerically(">=", 200))
	g.Expect(sess.Len()).To(BeNumerically("<=", 205))
	g.Expect(sess.Elapsed()).To(BeNumerically(">=", 10.0-1e-9))

	// further frames are no-ops once stopped
	n := sess.Len()
	sess.RunFrames(5)
	g.Expect(sess.Len()).To(Equal(n))
}

func TestSetAngleOverride(t *testing.T) {
	g := NewWithT(t)

	p := classroomParams()
	gen := machine.New(p, machine.CosineField{})
	sess := New(gen)
	sess.Step()

	sess.SetAngle(math.Pi / 2)
	g.Expect(sess.Angle()).To(Equal(math.Pi / 2))
	// override moves the angle only, never the clock or the series
	g.Expect(sess.Elapsed()).To(BeNumerically("~", p.Dt, 1e-12))
	g.Expect(sess.Len()).To(Equal(1))

	sess.Step()
	g.Expect(sess.Angle()).To(BeNumerically("~", math.Pi/2+p.Omega*p.Dt, 1e-12))
}

func TestReversedRotation(t *testing.T) {
	g := NewWithT(t)

	p := classroomParams()
	p.Omega = -2.0
	sess := New(machine.New(p, machine.CosineField{}))

	sess.Step()
	sess.Step()

	g.Expect(sess.Angle()).To(BeNumerically("~", -0.2, 1e-12))
	for _, r := range sess.Rectified() {
		g.Expect(r).To(BeNumerically(">=", 0.0))
	}
}

func TestReset(t *testing.T) {
	g := NewWithT(t)

	sess := New(machine.New(classroomParams(), machine.CosineField{}))
	sess.RunFrames(20)
	sess.SetRunning(false)

	sess.Reset()

	g.Expect(sess.Angle()).To(BeZero())
	g.Expect(sess.Elapsed()).To(BeZero())
	g.Expect(sess.Len()).To(BeZero())
	g.Expect(sess.Running()).To(BeTrue())
}

type countingMetric struct {
	n int
}

func (c *countingMetric) Name() string     { return "count" }
func (c *countingMetric) Observe(s Sample) { c.n++ }
func (c *countingMetric) Value() float64   { return float64(c.n) }
func (c *countingMetric) Reset()           { c.n = 0 }

func TestBatchRun(t *testing.T) {
	g := NewWithT(t)

	gen := machine.New(classroomParams(), machine.CosineField{})
	m := &countingMetric{}

	result, err := Run(context.Background(), gen, []Metric{m})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(result.Steps).To(Equal(200))
	g.Expect(result.Times).To(HaveLen(200))
	g.Expect(result.Metrics["count"]).To(Equal(200.0))
	g.Expect(result.Times[len(result.Times)-1]).To(BeNumerically("~", 10.0, 1e-9))
}

func TestBatchRunCancellation(t *testing.T) {
	g := NewWithT(t)

	gen := machine.New(classroomParams(), machine.CosineField{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, gen, nil)
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(result.Steps).To(BeZero())
}

func TestBatchRunRejectsBadParams(t *testing.T) {
	g := NewWithT(t)

	p := classroomParams()
	p.Dt = 0
	_, err := Run(context.Background(), machine.New(p, machine.CosineField{}), nil)
	g.Expect(err).To(HaveOccurred())
}

func BenchmarkStep(b *testing.B) {
	p := classroomParams()
	p.MaxTime = math.Inf(1)
	sess := New(machine.New(p, machine.CosineField{}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sess.Step()
	}
}
