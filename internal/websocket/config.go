package websocket

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/gatewire/internal/protocol"
)

const (
	// ReceiveTimeout bounds a single Receive call.
	ReceiveTimeout = 500 * time.Millisecond
	// CloseGracePeriod bounds the wait for the server's close frame.
	CloseGracePeriod = time.Second
	// DefaultHandshakeTimeout applies when Config.HandshakeTimeout is zero.
	DefaultHandshakeTimeout = 10 * time.Second

	tracerName = "github.com/luciancaetano/gatewire"
)

// Config holds everything Connect needs.
type Config struct {
	// URL is the gateway endpoint, including query parameters.
	URL string
	// Shard is sent with identify.
	Shard protocol.ShardInfo
	// HandshakeTimeout bounds the opening handshake.
	HandshakeTimeout time.Duration
	// Header is added to the handshake request.
	Header http.Header
	// RateLimitConfig paces outbound commands. If nil, DefaultRateLimitConfig() is used.
	RateLimitConfig *RateLimitConfig
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics defaults to counters registered on prometheus.DefaultRegisterer.
	Metrics *Metrics
	// Tracer defaults to the global OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

// RateLimitConfig defines rate limiting of outbound commands
type RateLimitConfig struct {
	// CommandsPerSecond defines the sustained rate of commands
	CommandsPerSecond rate.Limit
	// Burst defines the maximum burst size (token bucket capacity)
	Burst int
	// Enabled determines if rate limiting is active
	Enabled bool
}

// DefaultRateLimitConfig returns the default rate limit configuration.
// Allows 110 commands per minute with a burst of 10, under the gateway's
// limit of 120 per minute.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		CommandsPerSecond: rate.Limit(110.0 / 60.0),
		Burst:             10,
		Enabled:           true,
	}
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: false,
	}
}

func (r *RateLimitConfig) limiter() *rate.Limiter {
	if r == nil || !r.Enabled {
		return nil
	}
	return rate.NewLimiter(r.CommandsPerSecond, r.Burst)
}

func (c Config) withDefaults() Config {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.RateLimitConfig == nil {
		c.RateLimitConfig = DefaultRateLimitConfig()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics == nil {
		c.Metrics = defaultMetrics()
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}
	return c
}
