package hub

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/job"
	"github.com/tailored-agentic-units/mcu/looped"
	"github.com/tailored-agentic-units/mcu/module"
	"github.com/tailored-agentic-units/mcu/observability"
)

// Module is a collaborator registered with a hub. Start must not block: a
// module runs on its own goroutines once started.
type Module interface {
	ID() string
	RegisterReceiver(r module.Receiver)
	Start(ctx context.Context) error
}

type State int32

const (
	StateCreated State = iota
	StateRegistering
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRegistering:
		return "registering"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type options struct {
	logger   *slog.Logger
	observer observability.Observer
	queue    *JobQueue
}

type Option func(*options)

// WithLogger overrides HubConfig.Logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver overrides the observer named by HubConfig.Observer.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// WithQueue replaces the hub's own JobQueue.
func WithQueue(queue *JobQueue) Option {
	return func(o *options) { o.queue = queue }
}

// Hub receives jobs from its modules into a priority queue and passes each
// dequeued job to the assigning_job handler on a single dispatch goroutine.
//
// Registration (RegisterPattern, RegisterModules) happens before Start and is
// not safe to run concurrently with itself or with the dispatch loop. Enqueue
// is safe from any goroutine.
type Hub[D any] struct {
	name            string
	controller      *Controller[D]
	queue           *JobQueue
	shutdownTimeout time.Duration

	logger   *slog.Logger
	observer observability.Observer
	metrics  *Metrics

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// New creates a hub around domain, the value passed as the first argument to
// every handler. Zero fields of cfg fall back to config.DefaultHubConfig.
func New[D any](domain D, cfg config.HubConfig, opts ...Option) *Hub[D] {
	hubConfig := config.DefaultHubConfig()
	hubConfig.Merge(&cfg)

	o := options{logger: hubConfig.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.queue == nil {
		o.queue = NewJobQueue()
	}
	if o.observer == nil {
		observer, err := observability.GetObserver(hubConfig.Observer)
		if err != nil {
			o.logger.Warn(
				"observer not found, hub events disabled",
				slog.String("hub_name", hubConfig.Name),
				slog.String("observer", hubConfig.Observer),
			)
			observer = observability.NoOpObserver{}
		}
		o.observer = observer
	}

	return &Hub[D]{
		name:            hubConfig.Name,
		controller:      newController(domain),
		queue:           o.queue,
		shutdownTimeout: hubConfig.ShutdownTimeout.Std(),
		logger:          o.logger,
		observer:        o.observer,
		metrics:         NewMetrics(),
		state:           StateCreated,
		done:            make(chan struct{}),
	}
}

func (h *Hub[D]) Name() string {
	return h.name
}

func (h *Hub[D]) Controller() *Controller[D] {
	return h.controller
}

func (h *Hub[D]) Queue() *JobQueue {
	return h.queue
}

func (h *Hub[D]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Hub[D]) Metrics() MetricsSnapshot {
	snapshot := h.metrics.Snapshot()
	snapshot.QueueDepth = int64(h.queue.Len())
	return snapshot
}

// RegisterPattern installs the hub's handlers. See Controller.RegisterPattern.
func (h *Hub[D]) RegisterPattern(p *Pattern[D]) error {
	if err := h.configuring(); err != nil {
		return err
	}

	if err := h.controller.RegisterPattern(p); err != nil {
		return err
	}

	_, assigning := h.controller.Handler(HandlerAssigningJob)
	h.logger.Debug(
		"pattern registered",
		slog.String("hub_name", h.name),
		slog.Bool("assigning_job", assigning),
	)
	return nil
}

// RegisterModules hands the hub's Receiver to each module and records it.
//
// Modules are de-duplicated by ID, keeping the first occurrence. The call is
// rejected with ErrAlreadyRegistered only when every remaining module is
// already registered. A list that only partly overlaps is accepted as a whole:
// modules already present are registered again, so the module list can hold
// duplicates.
func (h *Hub[D]) RegisterModules(modules ...Module) error {
	if err := h.configuring(); err != nil {
		return err
	}

	candidates := uniqueModules(modules)

	allRegistered := true
	for _, m := range candidates {
		if !h.controller.hasModule(m.ID()) {
			allRegistered = false
			break
		}
	}
	if allRegistered {
		return ErrAlreadyRegistered
	}

	receiver := h.controller.Receiver()
	if receiver == nil {
		return ErrNoReceiver
	}

	for _, m := range candidates {
		m.RegisterReceiver(receiver)
		h.controller.AddModule(m)
		h.metrics.RecordModule(1)

		h.logger.Debug(
			"module registered",
			slog.String("hub_name", h.name),
			slog.String("module_id", m.ID()),
		)
		observability.Emit(context.Background(), h.observer, observability.Event{
			Type:   EventModuleRegister,
			Level:  observability.LevelVerbose,
			Source: "hub.RegisterModules",
			Data: map[string]any{
				"hub_name":  h.name,
				"module_id": m.ID(),
			},
		})
	}

	h.mu.Lock()
	h.state = StateRegistering
	h.mu.Unlock()

	return nil
}

// Enqueue puts a job on the hub's queue. It is the usual body of an
// on_receiver handler.
func (h *Hub[D]) Enqueue(ctx context.Context, j job.Job) {
	h.metrics.RecordEnqueued(1)
	observability.Emit(ctx, h.observer, observability.Event{
		Type:   EventJobEnqueue,
		Level:  observability.LevelVerbose,
		Source: "hub.Enqueue",
		Data: map[string]any{
			"hub_name": h.name,
			"job_id":   j.ID(),
			"producer": j.Producer(),
			"priority": int(j.Priority()),
		},
	})

	h.queue.Push(j)
}

// Start starts every registered module and then runs the dispatch loop on
// its own goroutine, returning once the loop is running. Cancelling ctx or
// calling Shutdown stops the loop; Wait reports how it ended.
func (h *Hub[D]) Start(ctx context.Context) error {
	runCtx, err := h.begin(ctx)
	if err != nil {
		return err
	}

	task := looped.Go(runCtx, h.dispatch)
	go func() {
		h.finish(runCtx, task.Wait())
	}()

	return nil
}

// Run is Start on the calling goroutine: it blocks until the dispatch loop
// ends and returns the loop's error, nil for a cancellation.
func (h *Hub[D]) Run(ctx context.Context) error {
	runCtx, err := h.begin(ctx)
	if err != nil {
		return err
	}

	h.finish(runCtx, looped.Run(runCtx, h.dispatch))
	return h.Wait()
}

// Done is closed when the dispatch loop has ended.
func (h *Hub[D]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the dispatch loop ends. It returns the error that
// stopped the loop, or nil when the loop was cancelled.
func (h *Hub[D]) Wait() error {
	if !h.started() {
		return ErrNotStarted
	}

	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Shutdown cancels the dispatch loop and waits up to timeout for it to end.
// A zero timeout uses HubConfig.ShutdownTimeout.
func (h *Hub[D]) Shutdown(timeout time.Duration) error {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}

	if timeout <= 0 {
		timeout = h.shutdownTimeout
	}

	h.logger.Debug(
		"shutting down hub",
		slog.String("hub_name", h.name),
	)
	cancel()

	select {
	case <-h.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("hub shutdown timeout after %v", timeout)
	}
}

func (h *Hub[D]) configuring() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateRunning || h.state == StateStopped {
		return ErrHubRunning
	}
	return nil
}

func (h *Hub[D]) started() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}

// begin validates the hub, moves it to running and starts its modules. The
// returned context ends when the hub is shut down.
func (h *Hub[D]) begin(ctx context.Context) (context.Context, error) {
	h.mu.Lock()
	if h.cancel != nil {
		h.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	if isNil(h.controller.Domain()) {
		h.mu.Unlock()
		return nil, ErrNoDomain
	}

	runCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.state = StateRunning
	h.mu.Unlock()

	h.logger.InfoContext(
		runCtx,
		"modules starting",
		slog.String("hub_name", h.name),
	)

	if err := h.startModules(runCtx); err != nil {
		cancel()
		h.finish(runCtx, err)
		return nil, err
	}

	observability.Emit(runCtx, h.observer, observability.Event{
		Type:   EventStart,
		Level:  observability.LevelInfo,
		Source: "hub.Start",
		Data: map[string]any{
			"hub_name": h.name,
			"modules":  len(h.controller.Modules()),
		},
	})

	return runCtx, nil
}

// startModules starts each registered module once, in registration order.
func (h *Hub[D]) startModules(ctx context.Context) error {
	modules := h.controller.Modules()
	if len(modules) == 0 {
		h.logger.WarnContext(
			ctx,
			"no module to start",
			slog.String("hub_name", h.name),
		)
		return nil
	}

	for _, m := range uniqueModules(modules) {
		if err := m.Start(ctx); err != nil {
			return fmt.Errorf("failed to start module %s: %w", m.ID(), err)
		}

		observability.Emit(ctx, h.observer, observability.Event{
			Type:   EventModuleStart,
			Level:  observability.LevelVerbose,
			Source: "hub.Start",
			Data: map[string]any{
				"hub_name":  h.name,
				"module_id": m.ID(),
			},
		})
	}

	return nil
}

// dispatch takes the most urgent job off the queue and hands it to the
// assigning_job handler. Handler errors end the dispatch loop.
func (h *Hub[D]) dispatch(ctx context.Context) error {
	j, err := h.queue.Pop(ctx)
	if err != nil {
		return err
	}
	defer h.queue.Done()

	assign, ok := h.controller.Handler(HandlerAssigningJob)
	if !ok {
		h.metrics.RecordDropped(1)
		h.logger.WarnContext(
			ctx,
			"no assigning_job handler registered, job dropped",
			slog.String("hub_name", h.name),
			slog.String("job_id", j.ID()),
			slog.String("producer", j.Producer()),
		)
		observability.Emit(ctx, h.observer, observability.Event{
			Type:   EventJobDrop,
			Level:  observability.LevelWarning,
			Source: "hub.dispatch",
			Data: map[string]any{
				"hub_name": h.name,
				"job_id":   j.ID(),
			},
		})
		return nil
	}

	if err := assign(ctx, h.controller.Domain(), j); err != nil {
		return fmt.Errorf("assigning_job handler failed for job %s: %w", j.ID(), err)
	}

	h.metrics.RecordDispatched(1)
	observability.Emit(ctx, h.observer, observability.Event{
		Type:   EventJobDispatch,
		Level:  observability.LevelVerbose,
		Source: "hub.dispatch",
		Data: map[string]any{
			"hub_name":  h.name,
			"job_id":    j.ID(),
			"recipient": j.Recipient(),
			"priority":  int(j.Priority()),
		},
	})

	return nil
}

func (h *Hub[D]) finish(ctx context.Context, err error) {
	h.mu.Lock()
	h.state = StateStopped
	h.err = err
	h.mu.Unlock()

	if err != nil {
		h.logger.ErrorContext(
			context.WithoutCancel(ctx),
			"hub stopped with error",
			slog.String("hub_name", h.name),
			slog.String("error", err.Error()),
		)
		observability.Emit(context.WithoutCancel(ctx), h.observer, observability.Event{
			Type:   EventError,
			Level:  observability.LevelError,
			Source: "hub.finish",
			Data: map[string]any{
				"hub_name": h.name,
				"error":    err.Error(),
			},
		})
	}

	observability.Emit(context.WithoutCancel(ctx), h.observer, observability.Event{
		Type:   EventStop,
		Level:  observability.LevelInfo,
		Source: "hub.finish",
		Data: map[string]any{
			"hub_name": h.name,
		},
	})

	close(h.done)
}

// uniqueModules drops repeated module IDs, keeping first occurrences.
func uniqueModules(modules []Module) []Module {
	seen := make(map[string]bool, len(modules))
	unique := make([]Module, 0, len(modules))
	for _, m := range modules {
		if seen[m.ID()] {
			continue
		}
		seen[m.ID()] = true
		unique = append(unique, m)
	}
	return unique
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
