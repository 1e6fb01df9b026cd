package websocket

import (
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// TestDefaultRateLimitConfig tests the default rate limit configuration
func TestDefaultRateLimitConfig(t *testing.T) {
	t.Parallel()

	config := DefaultRateLimitConfig()

	if config == nil {
		t.Fatal("DefaultRateLimitConfig() returned nil")
	}

	if !config.Enabled {
		t.Error("Expected rate limiting to be enabled by default")
	}

	// 110 per minute
	if perMinute := float64(config.CommandsPerSecond) * 60; perMinute < 109.999 || perMinute > 110.001 {
		t.Errorf("CommandsPerSecond = %v, want 110 per minute", config.CommandsPerSecond)
	}

	if config.Burst != 10 {
		t.Errorf("Burst = %v, want 10", config.Burst)
	}
}

// TestNoRateLimit tests the no rate limit configuration
func TestNoRateLimit(t *testing.T) {
	t.Parallel()

	config := NoRateLimit()

	if config == nil {
		t.Fatal("NoRateLimit() returned nil")
	}

	if config.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}

	if config.limiter() != nil {
		t.Error("disabled config should not build a limiter")
	}
}

// TestRateLimitConfigLimiter tests the limiter built from various configurations
func TestRateLimitConfigLimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      *RateLimitConfig
		wantLimiter bool
		wantLimit   rate.Limit
		wantBurst   int
	}{
		{
			name:        "default config",
			config:      DefaultRateLimitConfig(),
			wantLimiter: true,
			wantLimit:   rate.Limit(110.0 / 60.0),
			wantBurst:   10,
		},
		{
			name:        "no rate limit",
			config:      NoRateLimit(),
			wantLimiter: false,
		},
		{
			name:        "nil config",
			config:      nil,
			wantLimiter: false,
		},
		{
			name: "custom config",
			config: &RateLimitConfig{
				CommandsPerSecond: 2,
				Burst:             5,
				Enabled:           true,
			},
			wantLimiter: true,
			wantLimit:   2,
			wantBurst:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := tt.config.limiter()
			if (limiter != nil) != tt.wantLimiter {
				t.Fatalf("limiter() = %v, want limiter = %v", limiter, tt.wantLimiter)
			}
			if limiter == nil {
				return
			}

			if limiter.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %v, want %v", limiter.Limit(), tt.wantLimit)
			}

			if limiter.Burst() != tt.wantBurst {
				t.Errorf("Burst() = %v, want %v", limiter.Burst(), tt.wantBurst)
			}
		})
	}
}

// TestConfigDefaults tests that zero config fields are filled in
func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{URL: "ws://localhost"}.withDefaults()

	if cfg.HandshakeTimeout != DefaultHandshakeTimeout {
		t.Errorf("HandshakeTimeout = %v, want %v", cfg.HandshakeTimeout, DefaultHandshakeTimeout)
	}
	if cfg.RateLimitConfig == nil || !cfg.RateLimitConfig.Enabled {
		t.Error("RateLimitConfig should default to the enabled default config")
	}
	if cfg.Logger == nil || cfg.Metrics == nil || cfg.Tracer == nil {
		t.Errorf("collaborators not defaulted: %+v", cfg)
	}

	// Shared default metrics must not be registered twice
	if again := (Config{}).withDefaults(); again.Metrics != cfg.Metrics {
		t.Error("default metrics should be shared")
	}

	custom := Config{
		HandshakeTimeout: time.Second,
		RateLimitConfig:  NoRateLimit(),
		Logger:           slog.New(slog.DiscardHandler),
		Metrics:          NewMetrics(prometheus.NewRegistry()),
	}.withDefaults()

	if custom.HandshakeTimeout != time.Second || custom.RateLimitConfig.Enabled {
		t.Errorf("explicit values overwritten: %+v", custom)
	}
}
