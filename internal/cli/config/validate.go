package config

import (
	"fmt"
	"os"
)

// Validate checks field-level constraints the loader cannot express.
func (c *Config) Validate() error {
	switch c.Mode {
	case "structural", "interpretive":
	default:
		return fmt.Errorf("invalid mode %q (want structural or interpretive)", c.Mode)
	}
	if c.Detail < 0 {
		return fmt.Errorf("detail must be >= 0, got %d", c.Detail)
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path must not be empty")
	}
	if c.TablesDir != "" {
		info, err := os.Stat(c.TablesDir)
		if err != nil {
			return fmt.Errorf("tables_dir %s: %w", c.TablesDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("tables_dir %s is not a directory", c.TablesDir)
		}
	}
	return nil
}
