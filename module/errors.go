package module

import "errors"

var (
	ErrInboxClosed    = errors.New("module: inbox closed")
	ErrNoReceiver     = errors.New("module: no hub receiver registered")
	ErrAlreadyStarted = errors.New("module: already started")
)
