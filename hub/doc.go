// Package hub implements a modules central unit: an in-process hub that
// collects prioritized jobs from independently running modules and routes
// each one through a single dispatch handler.
//
// # Handlers
//
// A Pattern declares the two handlers a hub calls. The domain object given to
// New is passed to both, which is typically a type that embeds the hub:
//
//	type Vehicle struct {
//	    *hub.Hub[*Vehicle]
//	}
//
//	v := &Vehicle{}
//	v.Hub = hub.New(v, config.DefaultHubConfig())
//
//	pattern := hub.NewPattern[*Vehicle]().
//	    OnReceiver(func(ctx context.Context, v *Vehicle, j job.Job) error {
//	        v.Enqueue(ctx, j)
//	        return nil
//	    }).
//	    AssigningJob(func(ctx context.Context, v *Vehicle, j job.Job) error {
//	        m, ok := v.Controller().ModuleByID(j.Recipient())
//	        if !ok {
//	            return nil
//	        }
//	        return m.(*module.Base).Deliver(ctx, j)
//	    })
//
//	err := v.RegisterPattern(pattern)
//
// on_receiver is required. When assigning_job is missing, dispatched jobs are
// dropped with a warning.
//
// # Lifecycle
//
// A hub moves from created, through registering, to running:
//
//	err := v.RegisterModules(sensor, logger)
//	err = v.Start(ctx) // starts sensor and logger, then the dispatch loop
//	...
//	err = v.Shutdown(5 * time.Second)
//
// Start returns ErrNoDomain when the domain object is nil. RegisterModules
// returns ErrAlreadyRegistered only when every given module is already
// registered; see its documentation for the partial-overlap policy.
//
// # Ordering
//
// Jobs are dispatched in non-decreasing priority order. Jobs with equal
// priority are dispatched in the order they were enqueued.
//
// # Errors
//
// An error returned by the assigning_job handler stops the dispatch loop and
// is reported by Wait and Run. Panics in handlers are not recovered. Errors
// from on_receiver go back to the module that called Receiver.Get.
package hub
