// Package config holds the storefront service configuration and the storefront environment schema.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/config/configloader"
	"golang.org/x/text/language"
)

var _ configloader.Validator = (*Config)(nil)

const (
	IDsPlaceholder = "placeholder"
	IDsUnique      = "unique"
)

// CommerceConfig tunes the commerce client.
type CommerceConfig struct {
	IDs    string `koanf:"ids"`
	Locale string `koanf:"locale"`
}

// LocaleTag returns the collation locale, English when unset.
func (c *CommerceConfig) LocaleTag() language.Tag {
	if c.Locale == "" {
		return language.English
	}
	return language.Make(c.Locale)
}

// Validate defaults ids to unique.
func (c *CommerceConfig) Validate() error {
	switch c.IDs {
	case "":
		c.IDs = IDsUnique
	case IDsPlaceholder, IDsUnique:
	default:
		return fmt.Errorf("commerce.ids must be %q or %q, got %q", IDsPlaceholder, IDsUnique, c.IDs)
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid commerce.locale %q: %w", c.Locale, err)
		}
	}
	return nil
}

type Config struct {
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	GRPC           config.GrpcServerConfig     `koanf:"grpc"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
	Storage        config.StorageConfig        `koanf:"storage"`
	Database       config.DatabaseConfig       `koanf:"database"`
	Nats           config.NATSConfig           `koanf:"nats"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	Fulfillment    config.SubscriberConfig     `koanf:"fulfillment"`
	Commerce       CommerceConfig              `koanf:"commerce"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Storage.String())
	if c.Storage.Driver == config.StoragePostgres {
		b.WriteString(c.Database.String())
	}
	b.WriteString(c.Nats.String())
	if c.Nats.Enabled {
		b.WriteString(c.CircuitBreaker.String())
		b.WriteString(c.Fulfillment.String())
	}
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	b.WriteString("\n--- Commerce ---\n")
	b.WriteString(fmt.Sprintf("  ids: %s\n", c.Commerce.IDs))
	b.WriteString(fmt.Sprintf("  locale: %s\n", c.Commerce.LocaleTag()))

	return b.String()
}

// Validate checks if the configuration values are valid.
// Database settings are only required for the postgres driver,
// circuit breaker settings only when NATS is enabled. Fulfillment needs NATS.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.GRPC,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Storage,
		&c.Nats,
		&c.Telemetry,
		&c.Fulfillment,
		&c.Commerce,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if c.Storage.Driver == config.StoragePostgres {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if c.Nats.Enabled {
		if err := c.CircuitBreaker.Validate(); err != nil {
			return err
		}
	}
	if c.Fulfillment.Enabled && !c.Nats.Enabled {
		return fmt.Errorf("fulfillment requires nats to be enabled")
	}
	return nil
}
