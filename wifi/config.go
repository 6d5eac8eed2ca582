package wifi

import (
	"io"
	"log/slog"
	"time"

	"github.com/weaver-sensing/weaver/softtimer"
)

const (
	DefaultRxBufferSize = 1024
	DefaultRingSize     = 1024
	DefaultPromptSettle = 25 * time.Millisecond
	defaultInitTimeout  = 3 * time.Second
	defaultLinkTimeout  = 10 * time.Second
	defaultInitRetries  = 3
	defaultLinkRetries  = 5
	minRxBufferSize     = 64
)

// Config holds the Manager settings. Build one with NewConfigBuilder.
type Config struct {
	store        ConfigStore
	sensors      Sensors
	clock        softtimer.Clock
	logger       *slog.Logger
	timeouts     [phaseCount]time.Duration
	maxRetries   [phaseCount]uint8
	promptSettle time.Duration
	rxBufferSize int
	ringSize     int
}

func (c *Config) validate() error {
	if c.store == nil {
		return ErrNoStore
	}
	if c.sensors == nil {
		return ErrNoSensors
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.clock == nil {
		c.clock = softtimer.NewSystemClock()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.rxBufferSize < minRxBufferSize {
		c.rxBufferSize = DefaultRxBufferSize
	}
	if c.ringSize < 2 {
		c.ringSize = DefaultRingSize
	}
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder preloaded with the node defaults:
// 3 s and 3 retries for initialization, 10 s and 5 retries for every
// other phase, and a 25 ms settle after the send prompt.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: Config{
		timeouts: [phaseCount]time.Duration{
			PhaseInitialize:  defaultInitTimeout,
			PhaseNetwork:     defaultLinkTimeout,
			PhaseMqttConnect: defaultLinkTimeout,
			PhaseMqttPublish: defaultLinkTimeout,
		},
		maxRetries: [phaseCount]uint8{
			PhaseInitialize:  defaultInitRetries,
			PhaseNetwork:     defaultLinkRetries,
			PhaseMqttConnect: defaultLinkRetries,
			PhaseMqttPublish: defaultLinkRetries,
		},
		promptSettle: DefaultPromptSettle,
	}}
}

func (b *ConfigBuilder) WithStore(s ConfigStore) *ConfigBuilder {
	b.config.store = s
	return b
}

func (b *ConfigBuilder) WithSensors(s Sensors) *ConfigBuilder {
	b.config.sensors = s
	return b
}

func (b *ConfigBuilder) WithClock(c softtimer.Clock) *ConfigBuilder {
	b.config.clock = c
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithTimeout sets the response timeout of phase p.
func (b *ConfigBuilder) WithTimeout(p Phase, d time.Duration) *ConfigBuilder {
	if p >= 0 && p < phaseCount {
		b.config.timeouts[p] = d
	}
	return b
}

// WithMaxRetries sets how many times the error state of phase p retries
// before parking.
func (b *ConfigBuilder) WithMaxRetries(p Phase, n uint8) *ConfigBuilder {
	if p >= 0 && p < phaseCount {
		b.config.maxRetries[p] = n
	}
	return b
}

// WithPromptSettle sets the pause between the send prompt and the
// payload. Zero sends the payload in the same poll as the prompt.
func (b *ConfigBuilder) WithPromptSettle(d time.Duration) *ConfigBuilder {
	b.config.promptSettle = d
	return b
}

func (b *ConfigBuilder) WithRxBufferSize(n int) *ConfigBuilder {
	b.config.rxBufferSize = n
	return b
}

func (b *ConfigBuilder) WithRingSize(n int) *ConfigBuilder {
	b.config.ringSize = n
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
