package machine

import (
	"fmt"
	"math"
)

// FieldModel maps the coil angle to the field component perpendicular to
// the coil plane. Implementations must be pure: same angle, same output.
type FieldModel interface {
	Name() string
	PerpField(theta, b0 float64) float64
}

// CosineField is the ideal two-pole magnet pair: B_perp(theta) = B0*cos(theta).
type CosineField struct{}

func (CosineField) Name() string { return "cosine" }

func (CosineField) PerpField(theta, b0 float64) float64 {
	return b0 * math.Cos(theta)
}

// NewFieldModel resolves a field model by name.
func NewFieldModel(name string) (FieldModel, error) {
	switch name {
	case "", "cosine":
		return CosineField{}, nil
	case "dipole":
		return NewDipoleField(), nil
	default:
		return nil, fmt.Errorf("unknown field model: %s", name)
	}
}

// FieldModelNames lists the selectable field models.
func FieldModelNames() []string {
	return []string{"cosine", "dipole"}
}

// Generator couples a parameter set with a field model and exposes the
// flux law used by the stepper.
type Generator struct {
	Params Parameters
	Field  FieldModel
}

func New(p Parameters, f FieldModel) *Generator {
	if f == nil {
		f = CosineField{}
	}
	return &Generator{Params: p, Field: f}
}

// PerpField is the perpendicular field component at coil angle theta.
func (g *Generator) PerpField(theta float64) float64 {
	return g.Field.PerpField(theta, g.Params.PeakField)
}

// Flux is the linked flux N*A*B_perp(theta). With the cosine model this is
// exactly N*B0*A*cos(theta).
func (g *Generator) Flux(theta float64) float64 {
	return g.Params.Turns * g.Params.Area() * g.PerpField(theta)
}

// AnalyticEMF is the closed-form reference curve N*B0*A*omega*sin(theta).
// The output series reported by a session uses the finite difference
// instead; the two diverge slightly at coarse dt.
func (g *Generator) AnalyticEMF(theta float64) float64 {
	p := g.Params
	return p.Turns * p.PeakField * p.Area() * p.Omega * math.Sin(theta)
}

// GetParams exposes the tunable parameters for the live view.
func (g *Generator) GetParams() map[string]float64 {
	return map[string]float64{
		"omega":  g.Params.Omega,
		"b0":     g.Params.PeakField,
		"width":  g.Params.CoilWidth,
		"height": g.Params.CoilHeight,
		"turns":  g.Params.Turns,
	}
}

func (g *Generator) SetParam(name string, value float64) error {
	switch name {
	case "omega":
		g.Params.Omega = value
	case "b0":
		g.Params.PeakField = value
	case "width":
		g.Params.CoilWidth = value
	case "height":
		g.Params.CoilHeight = value
	case "turns":
		g.Params.Turns = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
