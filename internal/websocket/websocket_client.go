package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/gatewire"
	"github.com/luciancaetano/gatewire/internal/protocol"
	"github.com/luciancaetano/gatewire/snowflake"
)

// Client implements the gatewire.Client interface
type Client struct {
	id      string
	conn    *websocket.Conn
	shard   protocol.ShardInfo
	logger  *slog.Logger
	limiter *rate.Limiter // Rate limiter for outbound commands
	metrics *Metrics
	tracer  trace.Tracer

	frames      chan frame
	closing     chan struct{} // closed by CloseWithCode
	readStopped chan struct{} // closed when the socket returns its first read error
	readDone    chan struct{} // closed when readPump exits

	writeMu sync.Mutex // gorilla allows one concurrent writer
	mu      sync.RWMutex
	closed  bool
	readErr error // sticky once delivered
}

var _ gatewire.Client = (*Client)(nil)

type frame struct {
	kind int
	data []byte
	err  error
}

// Connect dials the gateway and starts reading.
//
// Permessage-deflate is not negotiated: compressed traffic arrives as binary
// zlib frames instead. The read limit is lifted because a single dispatch may
// be several megabytes.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New(gatewire.ErrNilConfig)
	}
	c := cfg.withDefaults()

	ctx, span := c.Tracer.Start(ctx, "gateway.connect",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("gateway.shard", c.Shard.String())),
	)
	defer span.End()

	dialer := websocket.Dialer{
		Proxy:             http.ProxyFromEnvironment,
		HandshakeTimeout:  c.HandshakeTimeout,
		EnableCompression: false,
	}

	conn, resp, err := dialer.DialContext(ctx, c.URL, c.Header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", gatewire.ErrDialFailed, err)
		recordError(span, err)
		return nil, err
	}
	conn.SetReadLimit(0)

	id := uuid.New().String()
	client := &Client{
		id:          id,
		conn:        conn,
		shard:       c.Shard,
		logger:      c.Logger.With("component", "gateway", "conn_id", id, "shard", c.Shard.String()),
		limiter:     c.RateLimitConfig.limiter(),
		metrics:     c.Metrics,
		tracer:      c.Tracer,
		frames:      make(chan frame),
		closing:     make(chan struct{}),
		readStopped: make(chan struct{}),
		readDone:    make(chan struct{}),
	}
	span.SetAttributes(attribute.String("gateway.conn_id", id))

	// Start the read pump
	go client.readPump()

	client.logger.Debug("gateway connected", "remote_addr", conn.RemoteAddr().String())
	return client, nil
}

// ID returns a unique identifier for this connection
func (c *Client) ID() string {
	return c.id
}

// Shard returns the shard sent with identify
func (c *Client) Shard() protocol.ShardInfo {
	return c.shard
}

// Receive waits up to ReceiveTimeout for the next inbound payload.
func (c *Client) Receive(ctx context.Context) (protocol.Envelope, bool, error) {
	if err := c.err(); err != nil {
		return protocol.Envelope{}, false, err
	}

	timer := time.NewTimer(ReceiveTimeout)
	defer timer.Stop()

	select {
	case f := <-c.frames:
		return c.handleFrame(f)
	case <-timer.C:
		c.metrics.idleReceives.Inc()
		return protocol.Envelope{}, false, nil
	case <-c.readDone:
		if err := c.err(); err != nil {
			return protocol.Envelope{}, false, err
		}
		return protocol.Envelope{}, false, ErrClosed
	case <-ctx.Done():
		return protocol.Envelope{}, false, ctx.Err()
	}
}

func (c *Client) handleFrame(f frame) (protocol.Envelope, bool, error) {
	if f.err != nil {
		err := f.err
		var closeErr *websocket.CloseError
		// gorilla reports a dropped stream as 1006, which never appears on the wire
		if errors.As(err, &closeErr) && closeErr.Code != websocket.CloseAbnormalClosure {
			c.metrics.frame(kindClose, len(closeErr.Text))
			c.logger.Debug("gateway sent close frame", "code", closeErr.Code, "reason", closeErr.Text)
			err = &CloseError{Code: closeErr.Code, Reason: closeErr.Text}
		} else {
			c.metrics.receiveError(errTypeTransport)
			c.logger.Debug("gateway transport failed", "error", err)
		}

		c.mu.Lock()
		c.readErr = err
		c.mu.Unlock()
		return protocol.Envelope{}, false, err
	}

	switch f.kind {
	case websocket.TextMessage:
		c.metrics.frame(kindText, len(f.data))
		return c.decode(f.data)

	case websocket.BinaryMessage:
		c.metrics.frame(kindBinary, len(f.data))
		inflated, err := protocol.Inflate(f.data)
		if err != nil {
			c.metrics.receiveError(errTypeDecompress)
			c.logger.Warn(gatewire.ErrFailedToInflate, "len", len(f.data), "raw", f.data, "error", err)
			return protocol.Envelope{}, false, err
		}
		return c.decode(inflated)

	default:
		return protocol.Envelope{}, false, nil
	}
}

func (c *Client) decode(data []byte) (protocol.Envelope, bool, error) {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		c.metrics.receiveError(errTypeDecode)
		c.logger.Warn(gatewire.ErrFailedToDecode, "raw", string(data), "error", err)
		return protocol.Envelope{}, false, err
	}
	return env, true, nil
}

// Send encodes cmd and writes it as one text frame. Heartbeats skip the
// rate limiter.
func (c *Client) Send(ctx context.Context, cmd protocol.Command) error {
	op := "nil"
	limited := true
	if cmd != nil {
		op = cmd.Opcode().String()
		limited = cmd.Opcode() != protocol.OpHeartbeat
	}

	ctx, span := c.tracer.Start(ctx, "gateway.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gateway.op", op),
			attribute.String("gateway.conn_id", c.id),
		),
	)
	defer span.End()

	// Encode the command first (before waiting on the limiter)
	data, err := protocol.Encode(cmd)
	if err != nil {
		err = fmt.Errorf("%s: %w", gatewire.ErrFailedToEncode, err)
		recordError(span, err)
		return err
	}

	if err := c.write(ctx, websocket.TextMessage, data, limited); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("gateway.bytes", len(data)))
	c.metrics.sent(op, len(data))
	return nil
}

// SendFrame writes data as a raw frame. Close, ping and pong frames are
// written as control frames and skip the rate limiter.
func (c *Client) SendFrame(ctx context.Context, messageType int, data []byte) error {
	switch messageType {
	case websocket.CloseMessage, websocket.PingMessage, websocket.PongMessage:
		if c.isClosed() {
			return ErrClosed
		}
		deadline, _ := ctx.Deadline()
		return c.conn.WriteControl(messageType, data, deadline)
	default:
		return c.write(ctx, messageType, data, true)
	}
}

func (c *Client) write(ctx context.Context, messageType int, data []byte, limited bool) error {
	if c.isClosed() {
		return ErrClosed
	}

	if limited && c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	// Zero deadline when ctx has none
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

// SendHeartbeat sends the last sequence number seen, or null before the
// first dispatch
func (c *Client) SendHeartbeat(ctx context.Context, seq *uint64) error {
	return c.Send(ctx, protocol.Heartbeat{Seq: seq})
}

// SendIdentify starts a new session for this client's shard
func (c *Client) SendIdentify(ctx context.Context, token string, intents protocol.Intents, presence protocol.Presence) error {
	c.logger.Debug("sending identify", "intents", uint64(intents), "status", string(presence.Status))
	return c.Send(ctx, protocol.NewIdentify(token, c.shard, intents, presence))
}

// SendResume resumes sessionID from seq
func (c *Client) SendResume(ctx context.Context, sessionID string, seq uint64, token string) error {
	c.logger.Debug("sending resume", "session_id", sessionID, "seq", seq)
	return c.Send(ctx, protocol.Resume{Token: token, SessionID: sessionID, Seq: seq})
}

// SendPresenceUpdate replaces the session presence
func (c *Client) SendPresenceUpdate(ctx context.Context, presence protocol.Presence) error {
	c.logger.Debug("sending presence update", "status", string(presence.Status))
	return c.Send(ctx, protocol.NewPresenceUpdate(presence))
}

// SendRequestGuildMembers requests member chunks for guildID
func (c *Client) SendRequestGuildMembers(ctx context.Context, guildID snowflake.GuildID, limit uint16, filter protocol.ChunkFilter, nonce string) error {
	c.logger.Debug("requesting guild members", "guild_id", guildID.String(), "limit", limit, "nonce", nonce)
	return c.Send(ctx, protocol.RequestGuildMembers{
		GuildID: guildID,
		Limit:   limit,
		Filter:  filter,
		Nonce:   nonce,
	})
}

// Close sends a close frame without a status code and closes the connection
func (c *Client) Close(ctx context.Context) error {
	return c.CloseWithCode(ctx, websocket.CloseNoStatusReceived, "")
}

// CloseWithCode closes the connection with a close code and optional reason.
// It waits up to CloseGracePeriod, or until ctx is done, for the gateway to
// answer with its own close frame. The socket is closed even if writing the
// close frame fails.
func (c *Client) CloseWithCode(ctx context.Context, code int, reason string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	deadline := time.Now().Add(CloseGracePeriod)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// FormatCloseMessage returns an empty payload for CloseNoStatusReceived
	err := c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	if err == nil {
		c.awaitPeerClose(ctx, deadline)
	}

	close(c.closing)
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	<-c.readDone

	c.logger.Debug("gateway connection closed", "code", code)
	return err
}

// awaitPeerClose discards frames still queued in the pump so it can read
// the gateway's close reply.
func (c *Client) awaitPeerClose(ctx context.Context, deadline time.Time) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for {
		select {
		case <-c.readStopped:
			return
		case <-c.frames:
		case <-timer.C:
			return
		case <-ctx.Done():
			return
		}
	}
}

// IsAlive returns true until either side closes the connection
func (c *Client) IsAlive() bool {
	select {
	case <-c.readStopped:
		return false
	default:
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.readErr == nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.readErr != nil {
		return c.readErr
	}
	if c.closed {
		return ErrClosed
	}
	return nil
}

// readPump hands frames to Receive one at a time. The first read error is
// delivered like a frame and ends the pump.
func (c *Client) readPump() {
	defer close(c.readDone)

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			close(c.readStopped)
		}

		select {
		case c.frames <- frame{kind: kind, data: data, err: err}:
		case <-c.closing:
			return
		}

		if err != nil {
			return
		}
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
