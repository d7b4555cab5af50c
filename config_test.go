package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfig(WithDefaults())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.SerialPort != "/dev/ttyUSB0" {
			t.Errorf("unexpected default serial port: %q", config.SerialPort)
		}
		if config.BaudRate != 19200 {
			t.Errorf("unexpected default baud rate: %d", config.BaudRate)
		}
		if config.Terminator != "\n" {
			t.Errorf("unexpected default terminator: %q", config.Terminator)
		}
	})

	t.Run("TOML file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labctl.toml")
		content := `
serial_port = "/dev/ttyS3"
baud_rate = 9600
dwell_time = 2.5
poll_interval = "500ms"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(WithDefaults(), WithFile(path, true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.SerialPort != "/dev/ttyS3" {
			t.Errorf("unexpected serial port: %q", config.SerialPort)
		}
		if config.BaudRate != 9600 {
			t.Errorf("unexpected baud rate: %d", config.BaudRate)
		}
		if config.DwellTime != 2.5 {
			t.Errorf("unexpected dwell time: %v", config.DwellTime)
		}
		if time.Duration(config.PollInterval) != 500*time.Millisecond {
			t.Errorf("unexpected poll interval: %v", config.PollInterval)
		}
		// Untouched keys keep their defaults.
		if config.LogLevel != "info" {
			t.Errorf("unexpected log level: %q", config.LogLevel)
		}
	})

	t.Run("missing optional file is ignored", func(t *testing.T) {
		_, err := LoadConfig(WithDefaults(), WithFile("does-not-exist.toml", false))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing required file is an error", func(t *testing.T) {
		_, err := LoadConfig(WithDefaults(), WithFile("does-not-exist.toml", true))
		if err == nil {
			t.Error("expected error for missing required config file")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERIAL_PORT", "/dev/ttyACM0")
		t.Setenv("BAUD_RATE", "57600")

		config, err := LoadConfig(WithDefaults(), WithEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.SerialPort != "/dev/ttyACM0" {
			t.Errorf("unexpected serial port: %q", config.SerialPort)
		}
		if config.BaudRate != 57600 {
			t.Errorf("unexpected baud rate: %d", config.BaudRate)
		}
	})
}
