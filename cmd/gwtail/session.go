package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/luciancaetano/gatewire"
	"github.com/luciancaetano/gatewire/snowflake"
	"github.com/luciancaetano/gatewire/ws"
)

var (
	errReconnectRequested = errors.New("gateway requested a reconnect")
	errSessionInvalidated = errors.New("gateway invalidated the session")
)

// session drives one connection: it heartbeats on the hello interval,
// identifies once and logs what arrives.
type session struct {
	client gatewire.Client
	cfg    *Config
	logger *slog.Logger

	seq       *uint64
	heartbeat *time.Ticker
	sessionID string
	nonces    map[string]string // nonce -> guild id
	pending   []snowflake.GuildID
}

func newSession(client gatewire.Client, cfg *Config, logger *slog.Logger) *session {
	return &session{
		client: client,
		cfg:    cfg,
		logger: logger,
		nonces: make(map[string]string),
	}
}

// run reads until ctx is done or the gateway ends the session.
func (s *session) run(ctx context.Context) error {
	defer func() {
		if s.heartbeat != nil {
			s.heartbeat.Stop()
		}
	}()

	for {
		if err := s.beat(ctx); err != nil {
			return err
		}
		if err := s.requestNext(ctx); err != nil {
			if ctx.Err() != nil {
				return s.shutdown()
			}
			return err
		}

		env, ok, err := s.client.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return s.shutdown()
			}
			// Bad payloads are logged by the client; keep reading
			if errors.Is(err, ws.ErrDecode) || errors.Is(err, ws.ErrDecompress) {
				continue
			}
			return s.receiveFailed(err)
		}
		if !ok {
			continue
		}

		if err := s.handle(ctx, env); err != nil {
			return err
		}
	}
}

// beat sends a heartbeat if one is due.
func (s *session) beat(ctx context.Context) error {
	if s.heartbeat == nil {
		return nil
	}
	select {
	case <-s.heartbeat.C:
		return s.client.SendHeartbeat(ctx, s.seq)
	default:
		return nil
	}
}

// requestNext sends at most one queued member request, so a rate limited
// send never holds up more than one heartbeat check.
func (s *session) requestNext(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	guild := s.pending[0]
	s.pending = s.pending[1:]

	nonce := ws.NewNonce()
	s.nonces[nonce] = guild.String()
	if err := s.client.SendRequestGuildMembers(ctx, guild, s.cfg.MemberLimit, ws.ChunkAll(), nonce); err != nil {
		return fmt.Errorf("request members of %s: %w", guild, err)
	}
	return nil
}

func (s *session) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.client.CloseWithCode(ctx, 1000, "shutting down")
}

func (s *session) receiveFailed(err error) error {
	var closeErr *ws.CloseError
	if errors.As(err, &closeErr) {
		s.logger.Error("gateway closed the session",
			"code", closeErr.Code,
			"reason", closeErr.Reason,
			"reconnectable", closeErr.Reconnectable(),
		)
	}
	return err
}

func (s *session) handle(ctx context.Context, env ws.Envelope) error {
	if env.Seq != nil {
		seq := *env.Seq
		s.seq = &seq
	}

	switch env.Op {
	case ws.OpHello:
		hello, err := env.Hello()
		if err != nil {
			return err
		}
		s.logger.Info("hello", "heartbeat_interval", hello.HeartbeatInterval())
		if s.heartbeat != nil {
			s.heartbeat.Stop()
		}
		s.heartbeat = time.NewTicker(hello.HeartbeatInterval())
		return s.client.SendIdentify(ctx, s.cfg.Token, ws.Intents(s.cfg.Intents), s.cfg.presence())

	case ws.OpHeartbeat:
		return s.client.SendHeartbeat(ctx, s.seq)

	case ws.OpHeartbeatAck:
		s.logger.Debug("heartbeat acknowledged")
		return nil

	case ws.OpReconnect:
		s.logger.Warn("reconnect requested")
		return errReconnectRequested

	case ws.OpInvalidSession:
		resumable, err := env.InvalidSession()
		if err != nil {
			return err
		}
		s.logger.Warn("session invalidated", "resumable", resumable, "session_id", s.sessionID)
		return errSessionInvalidated

	case ws.OpDispatch:
		return s.dispatch(ctx, env)

	default:
		s.logger.Debug("unhandled opcode", "op", env.Op.String())
		return nil
	}
}

func (s *session) dispatch(ctx context.Context, env ws.Envelope) error {
	switch env.Type {
	case ws.EventReady:
		ready, err := env.Ready()
		if err != nil {
			return err
		}
		s.sessionID = ready.SessionID
		s.logger.Info("ready",
			"user", ready.User.Username,
			"user_id", ready.User.ID.String(),
			"session_id", ready.SessionID,
			"guilds", len(ready.Guilds),
			"created_at", ready.User.ID.CreatedAt(),
		)

		s.pending = append(s.pending[:0], s.cfg.Guilds...)
		return nil

	case ws.EventGuildMembersChunk:
		chunk, err := env.GuildMembersChunk()
		if err != nil {
			return err
		}
		if _, ok := s.nonces[chunk.Nonce]; ok && chunk.ChunkIndex+1 >= chunk.ChunkCount {
			delete(s.nonces, chunk.Nonce)
		}
		s.logger.Info("guild members chunk",
			"guild_id", chunk.GuildID.String(),
			"members", len(chunk.Members),
			"chunk", fmt.Sprintf("%d/%d", chunk.ChunkIndex+1, chunk.ChunkCount),
			"not_found", len(chunk.NotFound),
		)
		return nil

	default:
		args := []any{"event", env.Type, "bytes", len(env.Data)}
		if env.Seq != nil {
			args = append(args, "seq", *env.Seq)
		}
		s.logger.Info("dispatch", args...)
		return nil
	}
}
