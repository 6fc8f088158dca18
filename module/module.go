package module

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tailored-agentic-units/mcu/job"
)

const defaultInboxSize = 64

// Receiver is the capability a hub hands to each registered module so the
// module can submit jobs back to the hub.
type Receiver interface {
	Get(ctx context.Context, j job.Job) error
}

// Processor handles one job taken from a module's inbox.
type Processor func(ctx context.Context, j job.Job) error

type Option func(*Base)

// WithTag sets a free-form tag used to find modules by kind rather than ID.
func WithTag(tag string) Option {
	return func(b *Base) { b.tag = tag }
}

func WithInboxSize(size int) Option {
	return func(b *Base) {
		if size > 0 {
			b.inboxSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Base is a ready-made hub module. It keeps the hub's Receiver for sending,
// and owns an Inbox that the hub's assigning handler delivers jobs into. Once
// started, a goroutine feeds inbox jobs to the Processor until the start
// context ends or the inbox is closed.
//
// Base can be used directly or embedded by modules that add behaviour.
type Base struct {
	id        string
	tag       string
	inboxSize int
	inbox     *Inbox
	process   Processor
	logger    *slog.Logger

	receiver      Receiver
	receiverMutex sync.RWMutex

	started   atomic.Bool
	processed atomic.Int64
	done      chan struct{}
}

func New(id string, process Processor, opts ...Option) *Base {
	b := &Base{
		id:        id,
		inboxSize: defaultInboxSize,
		process:   process,
		logger:    slog.Default(),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.inbox = NewInbox(b.inboxSize)
	return b
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Tag() string {
	return b.tag
}

func (b *Base) Inbox() *Inbox {
	return b.inbox
}

// RegisterReceiver stores the hub's Receiver. A later call replaces it.
func (b *Base) RegisterReceiver(r Receiver) {
	b.receiverMutex.Lock()
	b.receiver = r
	b.receiverMutex.Unlock()
}

func (b *Base) Receiver() Receiver {
	b.receiverMutex.RLock()
	defer b.receiverMutex.RUnlock()
	return b.receiver
}

// Send submits a job to the hub this module is registered with.
func (b *Base) Send(ctx context.Context, j job.Job) error {
	r := b.Receiver()
	if r == nil {
		return ErrNoReceiver
	}
	return r.Get(ctx, j)
}

// Deliver places a job in this module's inbox.
func (b *Base) Deliver(ctx context.Context, j job.Job) error {
	return b.inbox.Send(ctx, j)
}

// Start launches the processing goroutine and returns immediately.
func (b *Base) Start(ctx context.Context) error {
	if !b.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	b.logger.DebugContext(
		ctx,
		"module started",
		slog.String("module_id", b.id),
	)

	go b.run(ctx)
	return nil
}

// Done is closed when the processing goroutine exits.
func (b *Base) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the processing goroutine exits.
func (b *Base) Wait() {
	<-b.done
}

// Processed reports how many jobs the Processor has handled.
func (b *Base) Processed() int64 {
	return b.processed.Load()
}

func (b *Base) run(ctx context.Context) {
	defer close(b.done)

	for {
		j, err := b.inbox.Receive(ctx)
		if err != nil {
			b.logger.DebugContext(
				ctx,
				"module stopped",
				slog.String("module_id", b.id),
				slog.String("reason", err.Error()),
			)
			return
		}

		b.handle(ctx, j)
	}
}

func (b *Base) handle(ctx context.Context, j job.Job) {
	if b.process == nil {
		return
	}

	err := b.process(ctx, j)
	b.processed.Add(1)
	if err != nil {
		b.logger.ErrorContext(
			ctx,
			"job processing failed",
			slog.String("module_id", b.id),
			slog.String("job_id", j.ID()),
			slog.String("producer", j.Producer()),
			slog.String("error", err.Error()),
		)
	}
}
