package protocol

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/luciancaetano/gatewire/snowflake"
)

// Envelope is one decoded unit of inbound traffic. Seq and Type are only set
// on dispatches; Data is passed through undecoded until a typed accessor or
// DecodeData is called.
type Envelope struct {
	Op   Opcode
	Data jsoniter.RawMessage
	Seq  *uint64
	Type string
}

// DecodeData unmarshals the operation payload into v.
func (e Envelope) DecodeData(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &DecodeError{Raw: e.Data, Err: err}
	}
	return nil
}

// Hello is the first payload of every connection.
type Hello struct {
	HeartbeatIntervalMs uint64 `json:"heartbeat_interval"`
}

// HeartbeatInterval returns the cadence the driver must heartbeat at.
func (h Hello) HeartbeatInterval() time.Duration {
	return time.Duration(h.HeartbeatIntervalMs) * time.Millisecond
}

// Hello decodes an OpHello payload.
func (e Envelope) Hello() (Hello, error) {
	var h Hello
	if err := e.expect(OpHello, ""); err != nil {
		return h, err
	}
	err := e.DecodeData(&h)
	return h, err
}

// InvalidSession decodes an OpInvalidSession payload and reports whether the
// session may be resumed.
func (e Envelope) InvalidSession() (bool, error) {
	var resumable bool
	if err := e.expect(OpInvalidSession, ""); err != nil {
		return false, err
	}
	err := e.DecodeData(&resumable)
	return resumable, err
}

// User is the part of a user object this package reads.
type User struct {
	ID       snowflake.UserID `json:"id"`
	Username string           `json:"username"`
	Bot      bool             `json:"bot,omitempty"`
}

// UnavailableGuild is a guild listed in READY before its create event.
type UnavailableGuild struct {
	ID          snowflake.GuildID `json:"id"`
	Unavailable bool              `json:"unavailable"`
}

// Ready is the READY dispatch body: what a driver needs to resume later.
type Ready struct {
	Version          int                `json:"v"`
	User             User               `json:"user"`
	Guilds           []UnavailableGuild `json:"guilds"`
	SessionID        string             `json:"session_id"`
	ResumeGatewayURL string             `json:"resume_gateway_url"`
	Shard            []uint32           `json:"shard,omitempty"`
	Application      struct {
		ID snowflake.ApplicationID `json:"id"`
	} `json:"application"`
}

// Ready decodes a READY dispatch.
func (e Envelope) Ready() (Ready, error) {
	var r Ready
	if err := e.expect(OpDispatch, EventReady); err != nil {
		return r, err
	}
	err := e.DecodeData(&r)
	return r, err
}

// Member is one entry of a guild members chunk.
type Member struct {
	User  User               `json:"user"`
	Nick  string             `json:"nick,omitempty"`
	Roles []snowflake.RoleID `json:"roles"`
}

// GuildMembersChunk answers a RequestGuildMembers.
type GuildMembersChunk struct {
	GuildID    snowflake.GuildID  `json:"guild_id"`
	Members    []Member           `json:"members"`
	ChunkIndex int                `json:"chunk_index"`
	ChunkCount int                `json:"chunk_count"`
	NotFound   []snowflake.UserID `json:"not_found,omitempty"`
	Nonce      string             `json:"nonce,omitempty"`
}

// GuildMembersChunk decodes a GUILD_MEMBERS_CHUNK dispatch.
func (e Envelope) GuildMembersChunk() (GuildMembersChunk, error) {
	var c GuildMembersChunk
	if err := e.expect(OpDispatch, EventGuildMembersChunk); err != nil {
		return c, err
	}
	err := e.DecodeData(&c)
	return c, err
}

func (e Envelope) expect(op Opcode, event string) error {
	if e.Op != op || e.Type != event {
		return fmt.Errorf("%w: got %s %q, want %s %q", ErrUnexpectedPayload, e.Op, e.Type, op, event)
	}
	return nil
}
