package config

import (
	"log/slog"
	"time"
)

// HubConfig defines configuration for a Hub instance.
type HubConfig struct {
	// Hub identity, used as the logger and worker name
	Name string `json:"name,omitempty"`

	// Observer is the registered observer name receiving hub events
	Observer string `json:"observer,omitempty"`

	// ShutdownTimeout bounds how long Shutdown waits for the dispatch loop
	ShutdownTimeout Duration `json:"shutdown_timeout,omitempty"`

	Logger *slog.Logger `json:"-"`
}

// DefaultHubConfig returns a HubConfig with sensible defaults.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		Name:            "mcu",
		Observer:        "noop",
		ShutdownTimeout: Duration(5 * time.Second),
		Logger:          slog.Default(),
	}
}

func (c *HubConfig) Merge(source *HubConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.ShutdownTimeout > 0 {
		c.ShutdownTimeout = source.ShutdownTimeout
	}

	if source.Logger != nil {
		c.Logger = source.Logger
	}
}
