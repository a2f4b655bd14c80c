package machine

import (
	"math"
	"testing"
)

func TestFluxClosedForm(t *testing.T) {
	p := Parameters{
		Omega:      2.0,
		PeakField:  0.8,
		CoilWidth:  0.5,
		CoilHeight: 0.4,
		Turns:      10,
		Dt:         0.05,
		MaxTime:    10.0,
	}
	g := New(p, CosineField{})

	angles := []float64{0, 0.1, math.Pi / 4, math.Pi / 2, math.Pi, 3 * math.Pi, -2.7}
	for _, theta := range angles {
		want := p.Turns * p.PeakField * p.Area() * math.Cos(theta)
		got := g.Flux(theta)
		if math.Abs(got-want) > 1e-15*(1+math.Abs(want)) {
			t.Errorf("flux(%f): got %v, want %v", theta, got, want)
		}
	}
}

func TestPerpFieldCosineLaw(t *testing.T) {
	g := New(Parameters{PeakField: 0.8, CoilWidth: 1, CoilHeight: 1, Turns: 1, Dt: 0.05, MaxTime: 10}, CosineField{})

	got := g.PerpField(0.1)
	want := 0.8 * math.Cos(0.1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("perp field at 0.1 rad: got %f, want %f", got, want)
	}
	if math.Abs(got-0.796) > 1e-3 {
		t.Errorf("perp field at 0.1 rad: got %f, expected ~0.796", got)
	}
}

func TestFluxIsPure(t *testing.T) {
	g := New(DefaultParameters(), CosineField{})
	for _, theta := range []float64{0.3, -1.2, 7.9} {
		a := g.Flux(theta)
		b := g.Flux(theta)
		if a != b {
			t.Errorf("flux(%f) not deterministic: %v vs %v", theta, a, b)
		}
	}
}

func TestAnalyticEMF(t *testing.T) {
	p := Parameters{Omega: 2.0, PeakField: 0.8, CoilWidth: 1, CoilHeight: 1, Turns: 1, Dt: 0.05, MaxTime: 10}
	g := New(p, CosineField{})

	// dB_perp/dt at theta=0.1 is -B0*omega*sin(0.1) ~ -0.1597; scaled by N*A
	// this is the negated analytic EMF.
	got := g.AnalyticEMF(0.1)
	want := 0.8 * 2.0 * math.Sin(0.1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("analytic emf: got %f, want %f", got, want)
	}
	if math.Abs(want-0.1597) > 1e-4 {
		t.Errorf("fixture drift: expected ~0.1597, computed %f", want)
	}
}

func TestPeakEMFUsesAbsOmega(t *testing.T) {
	p := Parameters{Omega: -3.0, PeakField: 0.5, CoilWidth: 2, CoilHeight: 1, Turns: 4, Dt: 0.01, MaxTime: 1}
	want := 4 * 0.5 * 2.0 * 3.0
	if got := p.PeakEMF(); math.Abs(got-want) > 1e-12 {
		t.Errorf("peak emf: got %f, want %f", got, want)
	}
}

func TestValidate(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("default parameters should validate: %v", err)
	}

	bad := p
	bad.Dt = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero dt")
	}

	bad = p
	bad.CoilWidth = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative coil width")
	}
}

func TestSetParam(t *testing.T) {
	g := New(DefaultParameters(), CosineField{})

	if err := g.SetParam("omega", 4.0); err != nil {
		t.Fatalf("set omega: %v", err)
	}
	if g.Params.Omega != 4.0 {
		t.Errorf("omega not applied: %f", g.Params.Omega)
	}

	if err := g.SetParam("bogus", 1.0); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestDipoleFieldShape(t *testing.T) {
	d := NewDipoleField()

	// still a cosine in theta, just with a rescaled amplitude
	if d.PerpField(math.Pi/2, 1.0) > 1e-9 {
		t.Errorf("expected ~zero perpendicular field at pi/2, got %f", d.PerpField(math.Pi/2, 1.0))
	}

	amp := d.PerpField(0, 1.0)
	if amp <= 0 {
		t.Fatalf("expected positive center amplitude, got %f", amp)
	}
	// heuristic rescaling should land within an order of magnitude of B0
	if amp < 0.1 || amp > 10 {
		t.Errorf("center amplitude out of plausible range: %f", amp)
	}
}

func TestNewFieldModel(t *testing.T) {
	for _, name := range FieldModelNames() {
		f, err := NewFieldModel(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("name mismatch: %s vs %s", f.Name(), name)
		}
	}

	if _, err := NewFieldModel("hexapole"); err == nil {
		t.Error("expected error for unknown model")
	}
}
