package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/hub"
	"github.com/tailored-agentic-units/mcu/job"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestECU_ProducerToPrinter(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	cfg := config.DefaultHubConfig()
	cfg.Logger = logger
	e := newECU(cfg)
	if err := e.RegisterPattern(ecuPattern(logger)); err != nil {
		t.Fatalf("RegisterPattern() error = %v", err)
	}

	producerCfg := config.ProducerConfig{
		Interval:  config.Duration(5 * time.Millisecond),
		Jobs:      3,
		Recipient: "printer",
	}
	p := newProducer("producer", producerCfg, logger)
	pr := newPrinter("printer", &out)

	if err := e.RegisterModules(p, pr); err != nil {
		t.Fatalf("RegisterModules() error = %v", err)
	}
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Shutdown(time.Second)

	// Three printed jobs, each answered by an acknowledgement to the producer.
	deadline := time.After(2 * time.Second)
	for pr.Processed() < 3 || p.Processed() < 3 {
		select {
		case <-deadline:
			t.Fatalf("printed %d, acknowledged %d; want 3 each", pr.Processed(), p.Processed())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := strings.Count(out.String(), "print from producer"); got != 3 {
		t.Errorf("printed %d lines, want 3:\n%s", got, out.String())
	}
}

func TestECU_UnknownRecipientIsDiscarded(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	cfg := config.DefaultHubConfig()
	cfg.Logger = logger
	e := newECU(cfg)
	e.RegisterPattern(ecuPattern(logger))

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Shutdown(time.Second)

	e.Enqueue(context.Background(), job.New("print", "test").Recipient("nobody").Build())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Queue().Join(ctx); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if !strings.Contains(logs.String(), "recipient not registered") {
		t.Errorf("expected discard warning, got: %s", logs.String())
	}
	if e.State() != hub.StateRunning {
		t.Errorf("State() = %v, want dispatch loop still running", e.State())
	}
}
