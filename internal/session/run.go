package session

import (
	"context"
	"math"

	"github.com/mwaldner/genlab/internal/machine"
)

// Run executes a full batch simulation to the configured maximum
// duration and collects the series plus metric values. Cancellation via
// ctx returns the partial result together with the context error.
func Run(ctx context.Context, gen *machine.Generator, metrics []Metric) (*Result, error) {
	if err := gen.Params.Validate(); err != nil {
		return nil, err
	}

	sess := New(gen)
	for _, m := range metrics {
		m.Reset()
		sess.AddMetric(m)
	}

	// rounded so that e.g. 10.0/0.05 lands on 200 despite binary dt
	steps := int(math.Round(gen.Params.MaxTime / gen.Params.Dt))
	var err error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
			sess.Step()
		}
		if err != nil {
			break
		}
	}

	result := &Result{
		Times:     sess.Times(),
		Angles:    sess.Angles(),
		Flux:      sess.Flux(),
		EMF:       sess.EMF(),
		Rectified: sess.Rectified(),
		Steps:     sess.Len(),
		Metrics:   make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}
