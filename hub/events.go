package hub

import "github.com/tailored-agentic-units/mcu/observability"

// Hub event types.
const (
	EventStart          observability.EventType = "hub.start"
	EventStop           observability.EventType = "hub.stop"
	EventModuleRegister observability.EventType = "hub.module.register"
	EventModuleStart    observability.EventType = "hub.module.start"
	EventJobEnqueue     observability.EventType = "hub.job.enqueue"
	EventJobDispatch    observability.EventType = "hub.job.dispatch"
	EventJobDrop        observability.EventType = "hub.job.drop"
	EventError          observability.EventType = "hub.error"
)
