package hub_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/hub"
	"github.com/tailored-agentic-units/mcu/job"
)

type domain struct {
	name string
}

func TestPattern_LastWriteWins(t *testing.T) {
	var called string

	p := hub.NewPattern[*domain]().
		AssigningJob(func(ctx context.Context, d *domain, j job.Job) error {
			called = "first"
			return nil
		}).
		AssigningJob(func(ctx context.Context, d *domain, j job.Job) error {
			called = "second"
			return nil
		})

	handler := p.Handlers()[hub.HandlerAssigningJob]
	if handler == nil {
		t.Fatal("assigning_job handler not recorded")
	}
	handler(context.Background(), &domain{}, job.New("goal", "p").Build())

	if called != "second" {
		t.Errorf("called %q handler, want %q", called, "second")
	}
}

func TestPattern_HandlersIncludesUnsetSlots(t *testing.T) {
	handlers := hub.NewPattern[*domain]().Handlers()

	for _, name := range []string{hub.HandlerOnReceiver, hub.HandlerAssigningJob} {
		h, exists := handlers[name]
		if !exists {
			t.Errorf("handler %q missing from table", name)
		}
		if h != nil {
			t.Errorf("handler %q = non-nil, want nil", name)
		}
	}
}

func TestController_RegisterPattern_MovesOnReceiver(t *testing.T) {
	h := hub.New(&domain{}, config.DefaultHubConfig())
	p := hub.NewPattern[*domain]().
		OnReceiver(func(ctx context.Context, d *domain, j job.Job) error { return nil }).
		AssigningJob(func(ctx context.Context, d *domain, j job.Job) error { return nil })

	if err := h.Controller().RegisterPattern(p); err != nil {
		t.Fatalf("RegisterPattern() error = %v", err)
	}

	if h.Controller().Receiver() == nil {
		t.Error("Receiver() should be set after RegisterPattern")
	}
	if p.Handlers()[hub.HandlerOnReceiver] != nil {
		t.Error("on_receiver should be moved out of the pattern")
	}
	if _, ok := h.Controller().Handler(hub.HandlerOnReceiver); ok {
		t.Error("active table should not contain on_receiver")
	}
	if _, ok := h.Controller().Handler(hub.HandlerAssigningJob); !ok {
		t.Error("active table should contain assigning_job")
	}
}

func TestController_RegisterPattern_WithoutAssigningJob(t *testing.T) {
	h := hub.New(&domain{}, config.DefaultHubConfig())
	p := hub.NewPattern[*domain]().
		OnReceiver(func(ctx context.Context, d *domain, j job.Job) error { return nil })

	if err := h.Controller().RegisterPattern(p); err != nil {
		t.Fatalf("RegisterPattern() error = %v", err)
	}
	if _, ok := h.Controller().Handler(hub.HandlerAssigningJob); ok {
		t.Error("assigning_job should be reported unset")
	}
}

func TestController_RegisterPattern_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern *hub.Pattern[*domain]
		want    error
	}{
		{name: "nil pattern", pattern: nil, want: hub.ErrNilPattern},
		{name: "missing on_receiver", pattern: hub.NewPattern[*domain](), want: hub.ErrMissingReceiverHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hub.New(&domain{}, config.DefaultHubConfig())
			err := h.Controller().RegisterPattern(tt.pattern)
			if !errors.Is(err, tt.want) {
				t.Errorf("RegisterPattern() error = %v, want %v", err, tt.want)
			}
			if h.Controller().Receiver() != nil {
				t.Error("Receiver() should stay nil on failure")
			}
		})
	}
}

func TestController_RegisterPattern_Replaces(t *testing.T) {
	h := hub.New(&domain{}, config.DefaultHubConfig())
	noop := func(ctx context.Context, d *domain, j job.Job) error { return nil }

	h.Controller().RegisterPattern(hub.NewPattern[*domain]().OnReceiver(noop).AssigningJob(noop))
	first := h.Controller().Receiver()

	h.Controller().RegisterPattern(hub.NewPattern[*domain]().OnReceiver(noop))
	second := h.Controller().Receiver()

	if first == second {
		t.Error("second RegisterPattern should create a new Receiver")
	}
	if _, ok := h.Controller().Handler(hub.HandlerAssigningJob); ok {
		t.Error("second pattern should replace the handler table")
	}
}

func TestReceiver_GetForwardsDomainAndJob(t *testing.T) {
	d := &domain{name: "vehicle"}
	h := hub.New(d, config.DefaultHubConfig())

	var gotDomain *domain
	var gotJob job.Job
	h.RegisterPattern(hub.NewPattern[*domain]().
		OnReceiver(func(ctx context.Context, d *domain, j job.Job) error {
			gotDomain = d
			gotJob = j
			return nil
		}))

	j := job.New("goal", "sensor").Data("payload").Priority(4).Build()
	if err := h.Controller().Receiver().Get(context.Background(), j); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if gotDomain != d {
		t.Errorf("handler domain = %v, want %v", gotDomain, d)
	}
	if gotJob.ID() != j.ID() || gotJob.Data() != "payload" || gotJob.Priority() != 4 {
		t.Errorf("handler job = %v, want %v", gotJob, j)
	}
}

func TestReceiver_GetReturnsHandlerError(t *testing.T) {
	want := errors.New("queue rejected")
	h := hub.New(&domain{}, config.DefaultHubConfig())
	h.RegisterPattern(hub.NewPattern[*domain]().
		OnReceiver(func(ctx context.Context, d *domain, j job.Job) error {
			return want
		}))

	err := h.Controller().Receiver().Get(context.Background(), job.New("goal", "p").Build())
	if !errors.Is(err, want) {
		t.Errorf("Get() error = %v, want %v", err, want)
	}
}
