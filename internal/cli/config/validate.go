package config

import (
	"fmt"

	"github.com/leapstack-labs/ratbase/internal/cli/output"
)

// Validate checks values that cannot be checked by the conversion itself.
// Bases and the alphabet are validated per request so that they map to
// their own exit codes.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}
