package instrument

import (
	"log/slog"

	"github.com/qoptics/labdrv/scpi"
)

// Config describes how an Instrument frames its wire protocol. All fields
// are fixed at construction; terminators cannot change on an open
// connection.
type Config struct {
	// Dialer opens the transport. Required.
	Dialer Dialer
	// Terminator is appended to every outgoing command.
	Terminator string
	// ResponseTerminator marks the end of an incoming reply.
	ResponseTerminator string
	// Logger, when set, receives debug records of wire traffic.
	Logger *slog.Logger
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Terminator == "" {
		c.Terminator = scpi.DefaultTerminator
	}
	if c.ResponseTerminator == "" {
		c.ResponseTerminator = scpi.DefaultTerminator
	}
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithTerminator(t string) *ConfigBuilder {
	b.config.Terminator = t
	return b
}

func (b *ConfigBuilder) WithResponseTerminator(t string) *ConfigBuilder {
	b.config.ResponseTerminator = t
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build applies defaults and validates the assembled Config.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
