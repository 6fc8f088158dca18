package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/job"
	"github.com/tailored-agentic-units/mcu/module"
)

// producer emits a reading job on every tick, cycling through priorities.
type producer struct {
	*module.Base
	cfg    config.ProducerConfig
	logger *slog.Logger
}

func newProducer(id string, cfg config.ProducerConfig, logger *slog.Logger, opts ...module.Option) *producer {
	if cfg.Interval <= 0 {
		cfg.Interval = config.DefaultProducerConfig().Interval
	}

	p := &producer{cfg: cfg, logger: logger}
	opts = append(opts, module.WithTag("producer"))
	p.Base = module.New(id, p.acknowledge, opts...)
	return p
}

// acknowledge handles replies addressed back to the producer.
func (p *producer) acknowledge(ctx context.Context, j job.Job) error {
	p.logger.DebugContext(
		ctx,
		"acknowledgement received",
		slog.String("module_id", p.ID()),
		slog.Any("goal", j.Goal()),
	)
	return nil
}

func (p *producer) Start(ctx context.Context) error {
	if err := p.Base.Start(ctx); err != nil {
		return err
	}

	go p.produce(ctx)
	return nil
}

func (p *producer) produce(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval.Std())
	defer ticker.Stop()

	for n := 1; p.cfg.Jobs == 0 || n <= p.cfg.Jobs; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		j := job.New("print", p.ID()).
			Recipient(p.cfg.Recipient).
			Priority(job.Priority(n % 3)).
			Data(map[string]any{"sequence": n}).
			Subscription(p.onPrinted).
			Build()

		if err := p.Send(ctx, j); err != nil {
			p.logger.ErrorContext(
				ctx,
				"failed to send job",
				slog.String("module_id", p.ID()),
				slog.String("error", err.Error()),
			)
			return
		}
	}
}

// onPrinted runs when the printer reports a job done, and answers with an
// acknowledgement routed back through the hub.
func (p *producer) onPrinted(ctx context.Context, j job.Job) error {
	ack := job.New("ack", p.ID()).
		Recipient(p.ID()).
		Priority(job.DefaultPriority + 1).
		Data(j.ID()).
		Build()
	return p.Send(ctx, ack)
}

// printer writes every job it receives and notifies the job's subscriber.
type printer struct {
	*module.Base
	mu  sync.Mutex
	out io.Writer
}

func newPrinter(id string, out io.Writer, opts ...module.Option) *printer {
	pr := &printer{out: out}
	opts = append(opts, module.WithTag("printer"))
	pr.Base = module.New(id, pr.print, opts...)
	return pr
}

func (pr *printer) print(ctx context.Context, j job.Job) error {
	pr.mu.Lock()
	_, err := fmt.Fprintf(pr.out, "[%s] p%d %v from %s: %v\n",
		pr.ID(), j.Priority(), j.Goal(), j.Producer(), j.Data())
	pr.mu.Unlock()
	if err != nil {
		return err
	}

	return j.Notify(ctx)
}
