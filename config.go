package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the bench tool configuration
type Config struct {
	// SerialPort is the path to the counter's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `toml:"serial_port"`
	// BaudRate is the baud rate for serial communication (the CC1 ships at 19200)
	BaudRate int `toml:"baud_rate"`
	// Terminator frames outgoing commands; the CC1 uses "\n"
	Terminator string `toml:"terminator"`
	// ResponseTerminator frames incoming replies
	ResponseTerminator string `toml:"response_terminator"`
	// ReadTimeout bounds how long a reply is waited for
	ReadTimeout duration `toml:"read_timeout"`
	// DwellTime is applied to the counter at startup, in seconds
	DwellTime float64 `toml:"dwell_time"`
	// PollInterval is the delay between count readouts
	PollInterval duration `toml:"poll_interval"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `toml:"log_level"`
}

// duration lets TOML files spell durations as "500ms" or "2s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 19200
		c.Terminator = "\n"
		c.ResponseTerminator = "\n"
		c.ReadTimeout = duration(time.Second)
		c.DwellTime = 1.0
		c.PollInterval = duration(time.Second)
		c.LogLevel = "info"
		return nil
	}
}

// WithFile loads configuration from a TOML file. A missing file is only an
// error when the path was given explicitly.
func WithFile(path string, required bool) ConfigOption {
	return func(c *Config) error {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) && !required {
				return nil
			}
			return fmt.Errorf("config file %q: %w", path, err)
		}
		if _, err := toml.DecodeFile(path, c); err != nil {
			return fmt.Errorf("parse config file %q: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if port := os.Getenv("SERIAL_PORT"); port != "" {
			c.SerialPort = port
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "dwell-time":
				if d, err := strconv.ParseFloat(f.Value.String(), 64); err == nil {
					c.DwellTime = d
				}
			case "poll-interval":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.PollInterval = duration(d)
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			}
		})
		return nil
	}
}
