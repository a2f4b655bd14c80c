package metrics

import (
	"math"

	"github.com/mwaldner/genlab/internal/session"
)

// DCLevel is the mean of the rectified output over a run, i.e. the DC
// voltage an ideal load would average out of the commutated waveform.
type DCLevel struct {
	sum     float64
	samples int
}

func NewDCLevel() *DCLevel { return &DCLevel{} }

func (d *DCLevel) Name() string { return "dc_level" }

func (d *DCLevel) Observe(s session.Sample) {
	d.sum += s.Rectified
	d.samples++
}

func (d *DCLevel) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *DCLevel) Reset() {
	d.sum = 0
	d.samples = 0
}

// RippleFactor is the RMS of the AC component of the rectified output
// divided by its mean. Zero means perfectly smooth DC.
type RippleFactor struct {
	sum     float64
	sumSq   float64
	samples int
}

func NewRippleFactor() *RippleFactor { return &RippleFactor{} }

func (r *RippleFactor) Name() string { return "ripple_factor" }

func (r *RippleFactor) Observe(s session.Sample) {
	r.sum += s.Rectified
	r.sumSq += s.Rectified * s.Rectified
	r.samples++
}

func (r *RippleFactor) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	n := float64(r.samples)
	mean := r.sum / n
	if mean == 0 {
		return 0
	}
	variance := r.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance) / mean
}

func (r *RippleFactor) Reset() {
	r.sum = 0
	r.sumSq = 0
	r.samples = 0
}

// PeakEMF tracks the largest magnitude of the raw EMF estimate.
type PeakEMF struct {
	peak float64
}

func NewPeakEMF() *PeakEMF { return &PeakEMF{} }

func (p *PeakEMF) Name() string { return "peak_emf" }

func (p *PeakEMF) Observe(s session.Sample) {
	if abs := math.Abs(s.EMF); abs > p.peak {
		p.peak = abs
	}
}

func (p *PeakEMF) Value() float64 { return p.peak }

func (p *PeakEMF) Reset() { p.peak = 0 }

// Default is the metric set attached to every stored run.
func Default() []session.Metric {
	return []session.Metric{NewDCLevel(), NewRippleFactor(), NewPeakEMF()}
}
