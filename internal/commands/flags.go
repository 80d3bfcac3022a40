// Package commands implements the threadwatch command line.
package commands

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fragmede/threadwatch/internal/api"
	"github.com/fragmede/threadwatch/internal/config"
)

type Flags struct {
	LogLevel      string
	LogFile       string
	ConfigPath    string
	BaseURL       string
	Interval      int
	NoAutoRefresh bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// GlobalFlags returns the flags registered on the root command.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("THREADWATCH_CONFIG"),
			Value:       config.DefaultPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("THREADWATCH_LOG_LEVEL"),
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to <config-dir>/threadwatch/debug.log)",
			Sources:     cli.EnvVars("THREADWATCH_LOG_FILE"),
			Destination: &flags.LogFile,
		},
		&cli.IntFlag{
			Name:        "interval",
			Aliases:     []string{"n"},
			Usage:       "auto-refresh interval in seconds (5-300)",
			Sources:     cli.EnvVars("THREADWATCH_INTERVAL"),
			Destination: &flags.Interval,
		},
		&cli.BoolFlag{
			Name:        "no-auto-refresh",
			Usage:       "start with auto-refresh disabled",
			Sources:     cli.EnvVars("THREADWATCH_NO_AUTO_REFRESH"),
			Destination: &flags.NoAutoRefresh,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "thread endpoint prefix, <id>.json is appended",
			Sources:     cli.EnvVars("THREADWATCH_BASE_URL"),
			Destination: &flags.BaseURL,
		},
	}
}

// LoadConfig reads the config file and overlays every flag the user set.
func LoadConfig(flags *Flags, c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if c.IsSet("log-file") {
		cfg.LogFile = flags.LogFile
	}
	if c.IsSet("interval") {
		cfg.RefreshInterval = flags.Interval
	}
	if c.IsSet("no-auto-refresh") {
		cfg.AutoRefresh = !flags.NoAutoRefresh
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = flags.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// NewClient builds the HTTP client described by cfg.
func NewClient(cfg *config.Config) *api.Client {
	opts := []api.Option{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.RequestTimeout),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.UserAgent))
	}
	return api.NewClient(opts...)
}

// threadIDs resolves each argument to a thread identifier.
func threadIDs(args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id := api.ThreadIDFromURL(arg)
		if id == "" {
			return nil, fmt.Errorf("%q is not a Reddit thread URL", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
