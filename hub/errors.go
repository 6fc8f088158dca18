package hub

import "errors"

var (
	// Configuration errors. All of them are fatal for the hub.
	ErrNoDomain               = errors.New("hub: domain object is nil")
	ErrAlreadyRegistered      = errors.New("hub: modules have already been registered")
	ErrNoReceiver             = errors.New("hub: no pattern registered, receiver unavailable")
	ErrNilPattern             = errors.New("hub: pattern is nil")
	ErrMissingReceiverHandler = errors.New("hub: pattern has no on_receiver handler")

	// State errors.
	ErrAlreadyStarted = errors.New("hub: already started")
	ErrHubRunning     = errors.New("hub: configuration not allowed while running")
	ErrNotStarted     = errors.New("hub: not started")
)
