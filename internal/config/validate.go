package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Refresh interval bounds, in seconds.
const (
	MinRefreshInterval = 5
	MaxRefreshInterval = 300
)

// Validate checks that the configuration is usable. The returned error is a
// criterio.FieldErrors naming every offending field.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if c.RefreshInterval < MinRefreshInterval || c.RefreshInterval > MaxRefreshInterval {
		errs = errs.Append("refresh_interval",
			fmt.Errorf("must be between %d and %d seconds, got %d", MinRefreshInterval, MaxRefreshInterval, c.RefreshInterval))
	}
	if c.RequestTimeout <= 0 {
		errs = errs.Append("request_timeout", fmt.Errorf("must be positive, got %s", c.RequestTimeout))
	}

	return criterio.ValidateStruct(
		criterio.Run("base_url", c.BaseURL, validBaseURL),
		criterio.Run("log_level", c.LogLevel, validLogLevel),
		errs.ToError(),
	)
}

func validBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https: %q", raw)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	if !strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("must end with /: %q", raw)
	}
	return nil
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}
