package hub

import (
	"context"

	"github.com/tailored-agentic-units/mcu/job"
)

// Handler names recorded in a Pattern.
const (
	HandlerOnReceiver   = "on_receiver"
	HandlerAssigningJob = "assigning_job"
)

// Handler is invoked by the hub with its domain object and a job.
type Handler[D any] func(ctx context.Context, domain D, j job.Job) error

// Pattern declares the two handlers a hub calls at runtime:
//
//   - on_receiver runs whenever a module submits a job through its Receiver,
//     and usually enqueues the job on the hub.
//   - assigning_job runs for every job the dispatch loop dequeues, and usually
//     routes the job to its recipient module.
//
// Setting a handler twice keeps the last one. A Pattern does nothing until a
// Controller consumes it with RegisterPattern; give each hub its own Pattern.
type Pattern[D any] struct {
	onReceiver   Handler[D]
	assigningJob Handler[D]
}

func NewPattern[D any]() *Pattern[D] {
	return &Pattern[D]{}
}

func (p *Pattern[D]) OnReceiver(h Handler[D]) *Pattern[D] {
	p.onReceiver = h
	return p
}

func (p *Pattern[D]) AssigningJob(h Handler[D]) *Pattern[D] {
	p.assigningJob = h
	return p
}

// Handlers returns the handler table keyed by handler name. Unset slots are
// present with a nil value.
func (p *Pattern[D]) Handlers() map[string]Handler[D] {
	return map[string]Handler[D]{
		HandlerOnReceiver:   p.onReceiver,
		HandlerAssigningJob: p.assigningJob,
	}
}
