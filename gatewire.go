package gatewire

import (
	"context"

	"github.com/luciancaetano/gatewire/internal/protocol"
	"github.com/luciancaetano/gatewire/snowflake"
)

// Client is one connection to the event gateway.
//
// The client frames and codes traffic only. Heartbeat timing, identify and
// resume decisions belong to the caller that drives it.
//
// Example usage:
//
//	import "github.com/luciancaetano/gatewire/ws"
//
//	client, err := ws.Dial(ctx, ws.NewConfig(ws.GatewayURL("wss://gateway.example.gg"), ws.ShardInfo{Total: 1}))
//	if err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	for {
//	    env, ok, err := client.Receive(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if !ok {
//	        continue // nothing arrived within the receive window
//	    }
//	    handle(env)
//	}
type Client interface {
	// ID returns a unique identifier generated for this connection.
	ID() string

	// Shard returns the shard this connection identifies as.
	Shard() protocol.ShardInfo

	// Receive waits a bounded time for the next inbound payload.
	//
	// It returns ok == false with a nil error when nothing arrived in time,
	// so callers can interleave heartbeats with reads. Binary frames are
	// inflated before decoding. A close frame from the server is returned
	// as a *websocket.CloseError; transport errors are returned unchanged
	// and repeated on every later call. Decode and decompression errors
	// leave the connection usable.
	Receive(ctx context.Context) (env protocol.Envelope, ok bool, err error)

	// Send encodes cmd and writes it as one text frame.
	//
	// Sends are paced by the configured rate limiter, except heartbeats;
	// ctx bounds both the wait for a token and the write itself.
	Send(ctx context.Context, cmd protocol.Command) error

	// SendFrame writes raw data as a frame of the given gorilla message type.
	// Control frames bypass the rate limiter.
	SendFrame(ctx context.Context, messageType int, data []byte) error

	// SendHeartbeat sends the last sequence seen, or null before any dispatch.
	SendHeartbeat(ctx context.Context, seq *uint64) error

	// SendIdentify starts a new session for the client's shard.
	SendIdentify(ctx context.Context, token string, intents protocol.Intents, presence protocol.Presence) error

	// SendResume replays missed events for an existing session.
	SendResume(ctx context.Context, sessionID string, seq uint64, token string) error

	// SendPresenceUpdate replaces the presence of the session.
	SendPresenceUpdate(ctx context.Context, presence protocol.Presence) error

	// SendRequestGuildMembers asks for member chunks of one guild.
	SendRequestGuildMembers(ctx context.Context, guildID snowflake.GuildID, limit uint16, filter protocol.ChunkFilter, nonce string) error

	// Close sends a close frame without a status code and shuts the
	// connection down.
	Close(ctx context.Context) error

	// CloseWithCode sends a close frame with the given code and reason,
	// waits briefly for the server to answer, then closes the socket.
	//
	// Common close codes:
	//   - 1000 (websocket.CloseNormalClosure): the session is invalidated
	//   - 4000 (CloseUnknownError): the session stays resumable
	CloseWithCode(ctx context.Context, code int, reason string) error

	// IsAlive returns true until the connection is closed by either side.
	IsAlive() bool
}
