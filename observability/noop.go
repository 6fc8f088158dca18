package observability

import "context"

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
