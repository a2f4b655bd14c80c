package machine

import (
	"fmt"
	"math"
)

// Parameters holds the physical configuration of a generator run.
// They are fixed for the duration of a run; the live view mutates them
// between frames through SetParam.
type Parameters struct {
	Omega      float64 `json:"omega" mapstructure:"omega"`             // angular velocity, rad/s; sign sets rotation direction
	PeakField  float64 `json:"b0" mapstructure:"b0"`                   // peak field B0, tesla
	CoilWidth  float64 `json:"coil_width" mapstructure:"coil_width"`   // meters
	CoilHeight float64 `json:"coil_height" mapstructure:"coil_height"` // meters
	Turns      float64 `json:"turns" mapstructure:"turns"`             // winding count N
	Dt         float64 `json:"dt" mapstructure:"dt"`                   // timestep, seconds
	MaxTime    float64 `json:"max_time" mapstructure:"max_time"`       // run duration cap, seconds
}

// DefaultParameters matches the classroom setup: unit field, unit coil,
// one turn, one rad/s.
func DefaultParameters() Parameters {
	return Parameters{
		Omega:      1.0,
		PeakField:  1.0,
		CoilWidth:  1.0,
		CoilHeight: 1.0,
		Turns:      1.0,
		Dt:         0.05,
		MaxTime:    10.0,
	}
}

// Area is the coil area A in square meters.
func (p Parameters) Area() float64 {
	return p.CoilWidth * p.CoilHeight
}

// PeakEMF is the analytic EMF amplitude N*B0*A*|omega|.
func (p Parameters) PeakEMF() float64 {
	return p.Turns * p.PeakField * p.Area() * math.Abs(p.Omega)
}

func (p Parameters) Validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", p.Dt)
	}
	if p.MaxTime <= 0 {
		return fmt.Errorf("max time must be positive, got %f", p.MaxTime)
	}
	if p.CoilWidth <= 0 || p.CoilHeight <= 0 {
		return fmt.Errorf("coil dimensions must be positive, got %fx%f", p.CoilWidth, p.CoilHeight)
	}
	if p.Turns < 1 {
		return fmt.Errorf("turn count must be at least 1, got %f", p.Turns)
	}
	return nil
}
