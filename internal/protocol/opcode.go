package protocol

import "strconv"

// Opcode is the gateway operation carried in the "op" field.
type Opcode uint8

// receive only
const (
	OpDispatch       Opcode = 0
	OpReconnect      Opcode = 7
	OpInvalidSession Opcode = 9
	OpHello          Opcode = 10
	OpHeartbeatAck   Opcode = 11
)

// send / receive
const (
	OpHeartbeat Opcode = 1
)

// send only
const (
	OpIdentify            Opcode = 2
	OpPresenceUpdate      Opcode = 3
	OpVoiceStateUpdate    Opcode = 4
	OpResume              Opcode = 6
	OpRequestGuildMembers Opcode = 8
)

var opcodeNames = map[Opcode]string{
	OpDispatch:            "dispatch",
	OpHeartbeat:           "heartbeat",
	OpIdentify:            "identify",
	OpPresenceUpdate:      "presence_update",
	OpVoiceStateUpdate:    "voice_state_update",
	OpResume:              "resume",
	OpReconnect:           "reconnect",
	OpRequestGuildMembers: "request_guild_members",
	OpInvalidSession:      "invalid_session",
	OpHello:               "hello",
	OpHeartbeatAck:        "heartbeat_ack",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "opcode(" + strconv.Itoa(int(o)) + ")"
}

// Dispatch event names with typed payloads in this package.
const (
	EventReady             = "READY"
	EventResumed           = "RESUMED"
	EventGuildMembersChunk = "GUILD_MEMBERS_CHUNK"
)
