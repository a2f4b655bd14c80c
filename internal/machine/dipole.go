package machine

import "math"

// DipoleField approximates the magnet pair with two opposite inverse-square
// point sources sampled on a 2-D grid between the pole faces. The magnitude
// at the coil center, rescaled by the grid's mean magnitude, stands in for
// B0. The rescaling is a visualization heuristic and is not guaranteed to
// reproduce B0 exactly; the cosine model is the reference contract.
type DipoleField struct {
	GridSize   int     // samples per axis
	Separation float64 // pole-to-pole distance in grid units

	scale float64 // centerMag/meanMag, computed once
}

func NewDipoleField() *DipoleField {
	d := &DipoleField{
		GridSize:   21,
		Separation: 2.0,
	}
	d.scale = d.centerScale()
	return d
}

func (d *DipoleField) Name() string { return "dipole" }

// fieldAt evaluates the superposed source pair at (x, y). Poles sit at
// (-sep/2, 0) and (+sep/2, 0) with opposite signs.
func (d *DipoleField) fieldAt(x, y float64) (float64, float64) {
	half := d.Separation / 2
	fx, fy := pointSource(x+half, y, 1.0)
	gx, gy := pointSource(x-half, y, -1.0)
	return fx + gx, fy + gy
}

func pointSource(dx, dy, strength float64) (float64, float64) {
	r2 := dx*dx + dy*dy
	if r2 < 1e-9 {
		r2 = 1e-9
	}
	r := math.Sqrt(r2)
	// inverse-square falloff along the radial direction
	mag := strength / r2
	return mag * dx / r, mag * dy / r
}

// centerScale samples the grid spanning the gap and returns the ratio of
// the center magnitude to the mean magnitude.
func (d *DipoleField) centerScale() float64 {
	n := d.GridSize
	if n < 3 {
		n = 3
	}
	extent := d.Separation * 0.8
	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := -extent/2 + extent*float64(i)/float64(n-1)
			y := -extent/2 + extent*float64(j)/float64(n-1)
			fx, fy := d.fieldAt(x, y)
			sum += math.Hypot(fx, fy)
			count++
		}
	}
	mean := sum / float64(count)
	cx, cy := d.fieldAt(0, 0)
	center := math.Hypot(cx, cy)
	if mean == 0 {
		return 1.0
	}
	return center / mean
}

// PerpField uses the rescaled center magnitude in place of B0.
func (d *DipoleField) PerpField(theta, b0 float64) float64 {
	return b0 * d.scale * math.Cos(theta)
}
