// Package module provides the module side of a hub: the Receiver interface a
// module uses to submit jobs, and Base, a reusable module with its own inbox.
//
// A hub registers each module by handing it a Receiver. The module sends jobs
// through it, and the hub's assigning handler routes dispatched jobs back
// into the recipient module's inbox:
//
//	printer := module.New("printer", func(ctx context.Context, j job.Job) error {
//	    fmt.Println(j.Goal(), j.Data())
//	    return nil
//	})
//
//	h.RegisterModules(printer)
//	h.Start(ctx) // starts printer, then the dispatch loop
//
//	printer.Send(ctx, job.New("print", "printer").Recipient("printer").Build())
package module
