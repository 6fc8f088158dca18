// Package job defines the prioritized unit of work routed through a hub.
//
// Jobs are created with a builder and are immutable afterwards:
//
//	j := job.New("measure", "sensor").
//	    Recipient("logger").
//	    Priority(2).
//	    Data(map[string]any{"celsius": 21.5}).
//	    Build()
//
// Jobs are ordered by priority alone. Two jobs with the same priority compare
// as equal regardless of producer, payload or recipient; queues that need a
// deterministic order for equal priorities must add their own secondary key.
package job
