package config

import (
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func validConfig() *Config {
	c := &Config{}
	c.HTTPServer.Port = 8080
	c.HTTPServer.Timeout.Read = time.Second
	c.HTTPServer.Timeout.Write = time.Second
	c.HTTPServer.Timeout.Idle = time.Second
	c.HTTPServer.Timeout.ReadHeader = time.Second
	c.Shutdown.Timeout = time.Second
	return c
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "minimal config is valid", mutate: func(*Config) {}},
		{
			name:    "postgres requires database",
			mutate:  func(c *Config) { c.Storage.Driver = config.StoragePostgres },
			wantErr: true,
		},
		{
			name: "postgres with database",
			mutate: func(c *Config) {
				c.Storage.Driver = config.StoragePostgres
				c.Database = config.DatabaseConfig{URL: "postgres://u:p@db/shop", Timeout: time.Second}
			},
		},
		{
			name:    "database ignored for memory",
			mutate:  func(c *Config) { c.Database.URL = "mysql://nope" },
			wantErr: false,
		},
		{
			name: "nats requires circuit breaker",
			mutate: func(c *Config) {
				c.Nats = config.NATSConfig{Enabled: true, Url: "nats://n", Timeout: time.Second, Stream: "ORDERS", Subject: "storefront.orders.>"}
			},
			wantErr: true,
		},
		{
			name: "fulfillment requires nats",
			mutate: func(c *Config) {
				c.Fulfillment = config.SubscriberConfig{Enabled: true, Consumer: "fulfillment", Batch: 1, Timeout: time.Second, Interval: time.Second, Workers: 1}
			},
			wantErr: true,
		},
		{
			name:    "unknown ids strategy",
			mutate:  func(c *Config) { c.Commerce.IDs = "sequential" },
			wantErr: true,
		},
		{
			name:    "bad locale",
			mutate:  func(c *Config) { c.Commerce.Locale = "not a locale!" },
			wantErr: true,
		},
		{
			name:    "missing http port",
			mutate:  func(c *Config) { c.HTTPServer.Port = 0 },
			wantErr: true,
		},
		{
			name:    "grpc enabled without port",
			mutate:  func(c *Config) { c.GRPC.Enabled = true },
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)

			err := c.Validate()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateAppliesDefaults(t *testing.T) {
	c := validConfig()

	require.NoError(t, c.Validate())

	assert.Equal(t, config.StorageMemory, c.Storage.Driver)
	assert.Equal(t, IDsUnique, c.Commerce.IDs)
	assert.Equal(t, language.English, c.Commerce.LocaleTag())
}

func TestConfig_String_MasksDatabase(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = config.StoragePostgres
	c.Database = config.DatabaseConfig{URL: "postgres://user:hunter2@db/shop", Timeout: time.Second}

	s := c.String()

	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "postgres://****@db/shop")
}
