package hub

import "slices"

// Controller holds the registration state of one hub: its modules, the
// active handler table, its Receiver and the domain object passed to every
// handler. Controller is not safe for concurrent mutation; it is configured
// before the hub starts.
type Controller[D any] struct {
	domain   D
	modules  []Module
	pattern  map[string]Handler[D]
	receiver *Receiver[D]
}

func newController[D any](domain D) *Controller[D] {
	return &Controller[D]{
		domain:  domain,
		modules: make([]Module, 0),
		pattern: make(map[string]Handler[D]),
	}
}

func (c *Controller[D]) Domain() D {
	return c.domain
}

// RegisterPattern moves the on_receiver handler out of p into a new
// Receiver and keeps the remaining handlers as the active table. The
// on_receiver slot of p is cleared. A second call replaces the Receiver and
// table from the first; modules registered in between keep the old Receiver.
func (c *Controller[D]) RegisterPattern(p *Pattern[D]) error {
	if p == nil {
		return ErrNilPattern
	}

	handlers := p.Handlers()
	onReceiver := handlers[HandlerOnReceiver]
	if onReceiver == nil {
		return ErrMissingReceiverHandler
	}
	delete(handlers, HandlerOnReceiver)
	p.onReceiver = nil

	c.receiver = newReceiver(c.domain, onReceiver)
	c.pattern = handlers
	return nil
}

func (c *Controller[D]) Receiver() *Receiver[D] {
	return c.receiver
}

// Handler returns the active handler registered under name. Unset handlers
// report false.
func (c *Controller[D]) Handler(name string) (Handler[D], bool) {
	h := c.pattern[name]
	return h, h != nil
}

// AddModule appends m without checking for duplicates.
func (c *Controller[D]) AddModule(m Module) {
	c.modules = append(c.modules, m)
}

// Modules returns the registered modules in registration order.
func (c *Controller[D]) Modules() []Module {
	return slices.Clone(c.modules)
}

func (c *Controller[D]) hasModule(id string) bool {
	_, found := c.ModuleByID(id)
	return found
}

// RecipientModule returns the first registered module for which match
// reports true.
func (c *Controller[D]) RecipientModule(match func(Module) bool) (Module, bool) {
	for _, m := range c.modules {
		if match(m) {
			return m, true
		}
	}
	return nil, false
}

// ModuleByID resolves a job recipient to the first module with that ID.
func (c *Controller[D]) ModuleByID(id string) (Module, bool) {
	return c.RecipientModule(func(m Module) bool {
		return m.ID() == id
	})
}
