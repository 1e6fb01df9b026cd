package ws

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luciancaetano/gatewire"
	"github.com/luciancaetano/gatewire/internal/protocol"
	"github.com/luciancaetano/gatewire/internal/websocket"
	"github.com/luciancaetano/gatewire/snowflake"
)

// APIVersion is the gateway protocol version requested by GatewayURL.
const APIVersion = 10

type Config = websocket.Config
type RateLimitConfig = websocket.RateLimitConfig
type Metrics = websocket.Metrics
type CloseError = websocket.CloseError

type Envelope = protocol.Envelope
type Command = protocol.Command
type Opcode = protocol.Opcode
type Intents = protocol.Intents
type ShardInfo = protocol.ShardInfo
type Presence = protocol.Presence
type Activity = protocol.Activity
type Status = protocol.Status
type ChunkFilter = protocol.ChunkFilter
type DecodeError = protocol.DecodeError
type DecompressError = protocol.DecompressError

type Hello = protocol.Hello
type Ready = protocol.Ready
type GuildMembersChunk = protocol.GuildMembersChunk

type Heartbeat = protocol.Heartbeat
type Identify = protocol.Identify
type Resume = protocol.Resume
type PresenceUpdate = protocol.PresenceUpdate
type RequestGuildMembers = protocol.RequestGuildMembers

const (
	IntentsPrivileged    = protocol.IntentsPrivileged
	IntentsNonPrivileged = protocol.IntentsNonPrivileged
)

const (
	OpDispatch            = protocol.OpDispatch
	OpHeartbeat           = protocol.OpHeartbeat
	OpIdentify            = protocol.OpIdentify
	OpPresenceUpdate      = protocol.OpPresenceUpdate
	OpResume              = protocol.OpResume
	OpReconnect           = protocol.OpReconnect
	OpRequestGuildMembers = protocol.OpRequestGuildMembers
	OpInvalidSession      = protocol.OpInvalidSession
	OpHello               = protocol.OpHello
	OpHeartbeatAck        = protocol.OpHeartbeatAck
)

const (
	EventReady             = protocol.EventReady
	EventResumed           = protocol.EventResumed
	EventGuildMembersChunk = protocol.EventGuildMembersChunk
)

const (
	StatusOnline    = protocol.StatusOnline
	StatusDND       = protocol.StatusDND
	StatusIdle      = protocol.StatusIdle
	StatusInvisible = protocol.StatusInvisible
	StatusOffline   = protocol.StatusOffline
)

var (
	// ErrClosed is returned by operations on a locally closed client.
	ErrClosed = websocket.ErrClosed
	// ErrDecode matches every *DecodeError.
	ErrDecode = protocol.ErrDecode
	// ErrDecompress matches every *DecompressError.
	ErrDecompress = protocol.ErrDecompress
)

// Dial connects to the gateway described by cfg.
//
// Example:
//
//	cfg := ws.NewConfig(ws.GatewayURL("wss://gateway.example.gg"), ws.ShardInfo{ID: 0, Total: 1})
//	client, err := ws.Dial(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close(ctx)
func Dial(ctx context.Context, cfg *Config) (gatewire.Client, error) {
	client, err := websocket.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewConfig returns a config with the default rate limit. Logger, metrics and
// tracer fall back to their process-wide defaults.
func NewConfig(gatewayURL string, shard ShardInfo) *Config {
	return &Config{
		URL:             gatewayURL,
		Shard:           shard,
		RateLimitConfig: DefaultRateLimitConfig(),
	}
}

// NewMetrics creates gateway counters registered on reg. Clients without
// Metrics share a set registered on prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return websocket.NewMetrics(reg)
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return websocket.DefaultRateLimitConfig()
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return websocket.NoRateLimit()
}

// GatewayURL adds the version and encoding query parameters to base, keeping
// any other parameters. A base without a scheme is assumed to be wss.
func GatewayURL(base string) string {
	if !strings.Contains(base, "://") {
		base = "wss://" + base
	}

	u, err := url.Parse(base)
	if err != nil {
		return base
	}

	q := u.Query()
	q.Set("v", strconv.Itoa(APIVersion))
	q.Set("encoding", "json")
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// NewNonce returns a random nonce for RequestGuildMembers, short enough for
// the gateway's 32 character limit.
func NewNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ChunkAll requests every member of a guild.
func ChunkAll() ChunkFilter { return protocol.ChunkAll() }

// ChunkQuery requests members whose username starts with prefix.
func ChunkQuery(prefix string) ChunkFilter { return protocol.ChunkQuery(prefix) }

// ChunkUserIDs requests specific members.
func ChunkUserIDs(ids ...snowflake.UserID) ChunkFilter { return protocol.ChunkUserIDs(ids...) }
