package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SubscriberConfig tunes a JetStream pull consumer. The stream and subject come from NATSConfig.
type SubscriberConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Consumer string        `koanf:"consumer"`
	Batch    int           `koanf:"batch"`
	Timeout  time.Duration `koanf:"timeout"`
	Interval time.Duration `koanf:"interval"`
	Workers  int           `koanf:"workers"`
}

func (c *SubscriberConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Fulfillment Subscriber ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	if !c.Enabled {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  consumer: %s, workers: %d, batch: %d\n", c.Consumer, c.Workers, c.Batch))
	b.WriteString(fmt.Sprintf("  fetch timeout: %s, retry interval: %s\n", c.Timeout, c.Interval))
	return b.String()
}

func (c *SubscriberConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Consumer == "" {
		return errors.New("subscriber consumer name is required")
	}
	if c.Batch <= 0 {
		return fmt.Errorf("subscriber batch must be positive, got %v", c.Batch)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("subscriber timeout must be positive, got %v", c.Timeout)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("subscriber interval must be positive, got %v", c.Interval)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("subscriber workers must be positive, got %v", c.Workers)
	}
	return nil
}
