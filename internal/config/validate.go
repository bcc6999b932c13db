package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateVerify(); err != nil {
		return err
	}
	return c.validateJournal()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Workers < 1 {
		return errors.New("engine.workers must be at least 1")
	}
	if c.Engine.BarWidth < 1 {
		return errors.New("engine.bar_width must be at least 1")
	}
	return nil
}

func (c *Config) validateVerify() error {
	if strings.TrimSpace(c.Verify.Tool) == "" {
		return errors.New("verify.tool must be set")
	}
	if c.Verify.TimeoutSeconds < 1 {
		return errors.New("verify.timeout_seconds must be at least 1")
	}
	if len(c.Verify.Extensions) == 0 {
		return errors.New("verify.extensions must not be empty")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.FailureChannel == c.Journal.AttentionChannel {
		return fmt.Errorf("journal channels must be distinct, both are %q", c.Journal.FailureChannel)
	}
	return nil
}
