package hub

import "sync/atomic"

type MetricsSnapshot struct {
	Modules        int64
	JobsEnqueued   int64
	JobsDispatched int64
	JobsDropped    int64
	QueueDepth     int64
}

type Metrics struct {
	modules        atomic.Int64
	jobsEnqueued   atomic.Int64
	jobsDispatched atomic.Int64
	jobsDropped    atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordModule(delta int) {
	m.modules.Add(int64(delta))
}

func (m *Metrics) RecordEnqueued(delta int) {
	m.jobsEnqueued.Add(int64(delta))
}

func (m *Metrics) RecordDispatched(delta int) {
	m.jobsDispatched.Add(int64(delta))
}

func (m *Metrics) RecordDropped(delta int) {
	m.jobsDropped.Add(int64(delta))
}

// Snapshot reads every counter. QueueDepth is left for the hub to fill in.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Modules:        m.modules.Load(),
		JobsEnqueued:   m.jobsEnqueued.Load(),
		JobsDispatched: m.jobsDispatched.Load(),
		JobsDropped:    m.jobsDropped.Load(),
	}
}
