package gatewire

// Standard error messages
const (
	// Connection errors
	ErrConnectionClosed = "gateway connection is closed"
	ErrDialFailed       = "failed to dial gateway"
	ErrFailedToEncode   = "failed to encode command"
	ErrFailedToInflate  = "failed to inflate frame"
	ErrFailedToDecode   = "failed to decode payload"
	ErrNilConfig        = "gateway config is nil"
)

// Gateway close codes sent by the server in the close frame.
const (
	CloseUnknownError         = 4000
	CloseUnknownOpcode        = 4001
	CloseDecodeError          = 4002
	CloseNotAuthenticated     = 4003
	CloseAuthenticationFailed = 4004
	CloseAlreadyAuthenticated = 4005
	CloseInvalidSeq           = 4007
	CloseRateLimited          = 4008
	CloseSessionTimedOut      = 4009
	CloseInvalidShard         = 4010
	CloseShardingRequired     = 4011
	CloseInvalidAPIVersion    = 4012
	CloseInvalidIntents       = 4013
	CloseDisallowedIntents    = 4014
)

// CloseCodeReconnectable reports whether a session closed with code may be
// reconnected. Authentication, sharding, version and intents failures need
// operator intervention; everything else, including codes outside the
// gateway range, may be retried.
func CloseCodeReconnectable(code int) bool {
	switch code {
	case CloseAuthenticationFailed,
		CloseInvalidShard,
		CloseShardingRequired,
		CloseInvalidAPIVersion,
		CloseInvalidIntents,
		CloseDisallowedIntents:
		return false
	default:
		return true
	}
}
