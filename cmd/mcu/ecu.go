package main

import (
	"context"
	"log/slog"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/hub"
	"github.com/tailored-agentic-units/mcu/job"
)

// ecu is the domain object of the demo hub.
type ecu struct {
	*hub.Hub[*ecu]
}

func newECU(cfg config.HubConfig) *ecu {
	e := &ecu{}
	e.Hub = hub.New(e, cfg)
	return e
}

type deliverer interface {
	Deliver(ctx context.Context, j job.Job) error
}

func ecuPattern(logger *slog.Logger) *hub.Pattern[*ecu] {
	return hub.NewPattern[*ecu]().
		OnReceiver(func(ctx context.Context, e *ecu, j job.Job) error {
			e.Enqueue(ctx, j)
			return nil
		}).
		AssigningJob(func(ctx context.Context, e *ecu, j job.Job) error {
			m, ok := e.Controller().ModuleByID(j.Recipient())
			if !ok {
				logger.WarnContext(
					ctx,
					"recipient not registered, job discarded",
					slog.String("job_id", j.ID()),
					slog.String("recipient", j.Recipient()),
				)
				return nil
			}

			target, ok := m.(deliverer)
			if !ok {
				logger.WarnContext(
					ctx,
					"recipient cannot accept jobs",
					slog.String("job_id", j.ID()),
					slog.String("recipient", j.Recipient()),
				)
				return nil
			}

			return target.Deliver(ctx, j)
		})
}
