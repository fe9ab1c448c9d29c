package config

import (
	"fmt"
	"strings"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type StorageConfig struct {
	Driver string `koanf:"driver"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	return b.String()
}

// Validate defaults an empty driver to memory.
func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case "":
		c.Driver = StorageMemory
		return nil
	case StorageMemory, StoragePostgres:
		return nil
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Driver)
	}
}
