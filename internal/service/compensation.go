package service

import (
	"context"

	"github.com/MKhiriev/health-mate/internal/logger"
)

type compensationStep struct {
	name string
	fn   func(ctx context.Context) error
}

// compensation collects undo steps of a multi-step write and runs them in
// reverse order. Steps run on a context detached from the request's
// cancellation; failures are logged and do not stop the remaining steps.
type compensation struct {
	steps []compensationStep
}

func (c *compensation) add(name string, fn func(ctx context.Context) error) {
	c.steps = append(c.steps, compensationStep{name: name, fn: fn})
}

func (c *compensation) run(ctx context.Context, log *logger.Logger) {
	ctx = context.WithoutCancel(ctx)
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.fn(ctx); err != nil {
			log.Err(err).Str("step", step.name).Msg("compensation step failed")
		}
	}
}
