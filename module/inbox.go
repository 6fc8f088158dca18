package module

import (
	"context"
	"sync"

	"github.com/tailored-agentic-units/mcu/job"
)

// Inbox is a bounded FIFO of jobs assigned to one module. Sends block while
// the inbox is full; both ends honour context cancellation and Close.
type Inbox struct {
	channel  chan job.Job
	closed   chan struct{}
	once     sync.Once
	capacity int
}

func NewInbox(capacity int) *Inbox {
	return &Inbox{
		channel:  make(chan job.Job, capacity),
		closed:   make(chan struct{}),
		capacity: capacity,
	}
}

func (in *Inbox) Send(ctx context.Context, j job.Job) error {
	select {
	case <-in.closed:
		return ErrInboxClosed
	default:
	}

	select {
	case in.channel <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-in.closed:
		return ErrInboxClosed
	}
}

// Receive waits for the next job. Jobs still buffered when the inbox closes
// are discarded.
func (in *Inbox) Receive(ctx context.Context) (job.Job, error) {
	select {
	case <-in.closed:
		return job.Job{}, ErrInboxClosed
	default:
	}

	select {
	case j := <-in.channel:
		return j, nil
	case <-ctx.Done():
		return job.Job{}, ctx.Err()
	case <-in.closed:
		return job.Job{}, ErrInboxClosed
	}
}

func (in *Inbox) TryReceive() (job.Job, bool) {
	select {
	case j := <-in.channel:
		return j, true
	default:
		return job.Job{}, false
	}
}

func (in *Inbox) Close() {
	in.once.Do(func() { close(in.closed) })
}

func (in *Inbox) IsClosed() bool {
	select {
	case <-in.closed:
		return true
	default:
		return false
	}
}

func (in *Inbox) Capacity() int {
	return in.capacity
}

func (in *Inbox) Len() int {
	return len(in.channel)
}
