// Package config holds configuration for hubs and for the mcu binary.
//
// Every section follows the same shape: a Default constructor, and a Merge
// method that copies the non-zero fields of a source over the receiver.
// LoadConfig reads a JSON file and merges it over the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ProducerConfig drives the demo producer module of the mcu binary.
type ProducerConfig struct {
	Interval Duration `json:"interval,omitempty"`
	// Jobs caps the number of jobs produced; 0 produces until shutdown.
	Jobs int `json:"jobs,omitempty"`
	// Recipient is the module ID that produced jobs are addressed to.
	Recipient string `json:"recipient,omitempty"`
}

func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		Interval:  Duration(500 * time.Millisecond),
		Recipient: "printer",
	}
}

func (c *ProducerConfig) Merge(source *ProducerConfig) {
	if source.Interval > 0 {
		c.Interval = source.Interval
	}
	if source.Jobs > 0 {
		c.Jobs = source.Jobs
	}
	if source.Recipient != "" {
		c.Recipient = source.Recipient
	}
}

// Config is the top-level configuration of the mcu binary.
type Config struct {
	Hub       HubConfig      `json:"hub"`
	Producer  ProducerConfig `json:"producer"`
	InboxSize int            `json:"inbox_size,omitempty"`
}

const defaultInboxSize = 64

func DefaultConfig() Config {
	return Config{
		Hub:       DefaultHubConfig(),
		Producer:  DefaultProducerConfig(),
		InboxSize: defaultInboxSize,
	}
}

func (c *Config) Merge(source *Config) {
	c.Hub.Merge(&source.Hub)
	c.Producer.Merge(&source.Producer)

	if source.InboxSize > 0 {
		c.InboxSize = source.InboxSize
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
