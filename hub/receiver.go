package hub

import (
	"context"

	"github.com/tailored-agentic-units/mcu/job"
)

// Receiver lets a module submit jobs to the hub it is registered with. It
// binds the hub's domain object to the on_receiver handler and has no state of
// its own.
type Receiver[D any] struct {
	domain     D
	onReceiver Handler[D]
}

func newReceiver[D any](domain D, onReceiver Handler[D]) *Receiver[D] {
	return &Receiver[D]{
		domain:     domain,
		onReceiver: onReceiver,
	}
}

// Get passes the job unchanged to the on_receiver handler and returns the
// handler's error as is.
func (r *Receiver[D]) Get(ctx context.Context, j job.Job) error {
	return r.onReceiver(ctx, r.domain, j)
}
