// Command labctl connects to a Qubitekk CC1 coincidence counter over a
// serial port, applies a dwell time, and streams channel counts until
// interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phsym/console-slog"

	"github.com/qoptics/labdrv/instrument"
	"github.com/qoptics/labdrv/qubitekk"
	"github.com/qoptics/labdrv/units"
)

func main() {
	configPath := flag.String("config", "labctl.toml", "Path to the TOML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the counter")
	flag.Int("baud-rate", 19200, "Baud rate for serial communication")
	flag.Float64("dwell-time", 1.0, "Dwell time to apply at startup, in seconds")
	flag.String("poll-interval", "1s", "Delay between count readouts")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	fileRequired := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			fileRequired = true
		}
	})

	config, err := LoadConfig(
		WithDefaults(),
		WithFile(*configPath, fileRequired),
		WithEnv(),
		WithFlags(flag.CommandLine),
	)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: logLevel}))

	insConfig, err := instrument.NewConfigBuilder().
		WithDialer(instrument.SerialDialer{
			PortName:    config.SerialPort,
			BaudRate:    config.BaudRate,
			ReadTimeout: time.Duration(config.ReadTimeout),
		}).
		WithTerminator(config.Terminator).
		WithResponseTerminator(config.ResponseTerminator).
		WithLogger(logger.With("component", "instrument")).
		Build()
	if err != nil {
		logger.Error("Failed to create instrument config", "error", err)
		os.Exit(1)
	}

	ins, err := instrument.New(context.Background(), insConfig)
	if err != nil {
		logger.Error("Failed to connect to counter", "error", err, "port", config.SerialPort)
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing counter connection")
		if err := ins.Close(); err != nil {
			logger.Error("Failed to close counter", "error", err)
		}
	}()

	cc := qubitekk.NewCC1(ins)

	if err := cc.SetDwellTime(units.Bare(config.DwellTime)); err != nil {
		logger.Error("Failed to set dwell time", "error", err, "dwell_time", config.DwellTime)
		os.Exit(1)
	}
	if err := cc.SetCountEnable(true); err != nil {
		logger.Error("Failed to enable counting", "error", err)
		os.Exit(1)
	}

	logger.Info("Streaming counts", "port", config.SerialPort, "dwell_time", config.DwellTime)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(config.PollInterval))
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			logger.Info("Received shutdown signal", "signal", sig)
			return

		case <-ticker.C:
			for idx := 0; idx < cc.ChannelCount(); idx++ {
				ch, err := cc.Channel(idx)
				if err != nil {
					logger.Error("Channel lookup failed", "error", err, "index", idx)
					os.Exit(1)
				}
				count, err := ch.Count()
				if err != nil {
					logger.Error("Count readout failed", "error", err, "channel", ch.Name())
					continue
				}
				logger.Info("Count", "channel", ch.Name(), "count", count)
			}
		}
	}
}
