package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags parses the gateway's command-line flags from args.
//
// Flags:
//
//	-p         listening port
//	-env-file  dotenv file loaded before reading the environment
//	-log-level log level (debug, info, warn, error)
//	-log-format log format (json, console)
//
// Unset flags leave the corresponding fields at their zero value so that
// lower-priority sources can fill them.
func parseFlags(args []string) (*StructuredConfig, error) {
	var port int
	var envFile string
	var logLevel string
	var logFormat string

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&port, "p", 0, "Listening port")
	fs.StringVar(&envFile, "env-file", "", "Dotenv file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", "", "Log format (json, console)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Server: Server{
			Port: port,
		},
		Log: Log{
			Level:  logLevel,
			Format: logFormat,
		},
		EnvFile: envFile,
	}, nil
}
