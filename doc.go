// Package gatewire is a wire-level client for a real-time event gateway.
//
// A persistent WebSocket connection carries JSON envelopes of the form
//
//	{"op": <opcode>, "d": <payload>, "s": <sequence>, "t": <event name>}
//
// inbound, and five control commands outbound: heartbeat, identify, resume,
// presence update and guild member chunk request.
//
// # Packages
//
//   - ws: dial a gateway and get a Client
//   - snowflake: typed 64-bit identifiers with creation timestamps
//   - cmd/gwtail: a diagnostic driver that identifies and logs events
//
// # Quick Start
//
//	cfg := ws.NewConfig(ws.GatewayURL("wss://gateway.example.gg"), ws.ShardInfo{Total: 1})
//	client, err := ws.Dial(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	env, ok, err := client.Receive(ctx) // waits at most 500ms
//	hello, err := env.Hello()
//	client.SendIdentify(ctx, token, ws.IntentsNonPrivileged, ws.Presence{})
//
// # Framing
//
// Text frames hold one envelope. Binary frames hold a zlib stream, either
// complete or cut after a sync flush; they are inflated before decoding.
// Outbound commands are always text.
//
// # Rate Limiting
//
// Outbound commands other than heartbeats go through a token bucket, so a
// heartbeat is never delayed by a burst of requests:
//
//	// Default: 110 commands per minute, burst 10
//	cfg.RateLimitConfig = ws.DefaultRateLimitConfig()
//
//	// Disabled
//	cfg.RateLimitConfig = ws.NoRateLimit()
//
// # Close Codes
//
// A close frame from the gateway surfaces from Receive as a
// *ws.CloseError. Its Reconnectable method tells whether the code allows a
// new session (see CloseCodeReconnectable).
//
// # Observability
//
//   - log/slog: warnings for undecodable payloads, debug for sent commands
//   - Prometheus: frame, byte, error and command counters
//   - OpenTelemetry: a span per connect and per send
package gatewire
