package protocol

import (
	"fmt"
	"runtime"
	"time"

	"github.com/luciancaetano/gatewire/snowflake"
)

// LargeThreshold is the member count above which the gateway stops sending
// offline members in guild create payloads.
const LargeThreshold uint8 = 250

// ClientName is reported as the browser and device identify properties.
const ClientName = "gatewire"

// Command is an outbound control message. The set of implementations is
// closed: Heartbeat, Identify, Resume, PresenceUpdate and RequestGuildMembers.
type Command interface {
	// Opcode returns the "op" value the command is sent with.
	Opcode() Opcode
	payload() any
}

// ShardInfo addresses one connection partition.
type ShardInfo struct {
	ID    snowflake.ShardID
	Total uint32
}

func (s ShardInfo) String() string {
	return fmt.Sprintf("[%d, %d]", s.ID, s.Total)
}

// Heartbeat reports the last sequence number seen. Seq is nil before the
// first dispatch.
type Heartbeat struct {
	Seq *uint64
}

func (Heartbeat) Opcode() Opcode { return OpHeartbeat }

func (h Heartbeat) payload() any { return h.Seq }

// Identify starts a new session.
type Identify struct {
	Token    string
	Shard    ShardInfo
	Intents  Intents
	Presence Presence
	Since    time.Time
}

// NewIdentify builds an identify command stamped with the current time.
func NewIdentify(token string, shard ShardInfo, intents Intents, presence Presence) Identify {
	return Identify{Token: token, Shard: shard, Intents: intents, Presence: presence, Since: time.Now()}
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type identifyPayload struct {
	Token          string             `json:"token"`
	Properties     identifyProperties `json:"properties"`
	Compress       bool               `json:"compress"`
	LargeThreshold uint8              `json:"large_threshold"`
	Shard          [2]uint32          `json:"shard"`
	Intents        Intents            `json:"intents"`
	Presence       presencePayload    `json:"presence"`
}

func (Identify) Opcode() Opcode { return OpIdentify }

func (i Identify) payload() any {
	return identifyPayload{
		Token: i.Token,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: ClientName,
			Device:  ClientName,
		},
		Compress:       true,
		LargeThreshold: LargeThreshold,
		Shard:          [2]uint32{uint32(i.Shard.ID), i.Shard.Total},
		Intents:        i.Intents,
		Presence:       i.Presence.payload(unixMilli(i.Since)),
	}
}

// Resume reattaches to an existing session.
type Resume struct {
	Token     string
	SessionID string
	Seq       uint64
}

type resumePayload struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       uint64 `json:"seq"`
}

func (Resume) Opcode() Opcode { return OpResume }

func (r Resume) payload() any {
	return resumePayload{Token: r.Token, SessionID: r.SessionID, Seq: r.Seq}
}

// PresenceUpdate changes the presence of an identified session.
type PresenceUpdate struct {
	Presence Presence
	Since    time.Time
}

// NewPresenceUpdate builds a presence update stamped with the current time.
func NewPresenceUpdate(presence Presence) PresenceUpdate {
	return PresenceUpdate{Presence: presence, Since: time.Now()}
}

func (PresenceUpdate) Opcode() Opcode { return OpPresenceUpdate }

func (p PresenceUpdate) payload() any {
	return p.Presence.payload(unixMilli(p.Since))
}

// ChunkFilter selects the members returned for a RequestGuildMembers. The
// zero value matches every member.
type ChunkFilter struct {
	query   string
	userIDs []snowflake.UserID
	byIDs   bool
}

// ChunkAll matches every member of the guild.
func ChunkAll() ChunkFilter {
	return ChunkFilter{}
}

// ChunkQuery matches members whose username starts with prefix.
func ChunkQuery(prefix string) ChunkFilter {
	return ChunkFilter{query: prefix}
}

// ChunkUserIDs matches the listed members only.
func ChunkUserIDs(ids ...snowflake.UserID) ChunkFilter {
	if ids == nil {
		ids = []snowflake.UserID{}
	}
	return ChunkFilter{userIDs: ids, byIDs: true}
}

// RequestGuildMembers asks for member chunks of one guild. A zero Limit lets
// the gateway pick its default.
type RequestGuildMembers struct {
	GuildID snowflake.GuildID
	Limit   uint16
	Filter  ChunkFilter
	Nonce   string
}

type requestGuildMembersPayload struct {
	GuildID snowflake.GuildID   `json:"guild_id"`
	Query   *string             `json:"query,omitempty"`
	UserIDs *[]snowflake.UserID `json:"user_ids,omitempty"`
	Limit   uint16              `json:"limit"`
	Nonce   string              `json:"nonce"`
}

func (RequestGuildMembers) Opcode() Opcode { return OpRequestGuildMembers }

func (r RequestGuildMembers) payload() any {
	p := requestGuildMembersPayload{
		GuildID: r.GuildID,
		Limit:   r.Limit,
		Nonce:   r.Nonce,
	}
	if r.Filter.byIDs {
		ids := r.Filter.userIDs
		p.UserIDs = &ids
	} else {
		query := r.Filter.query
		p.Query = &query
	}
	return p
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
