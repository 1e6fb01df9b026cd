package protocol

// Intents selects which event categories the gateway delivers.
type Intents uint64

const (
	IntentGuilds Intents = 1 << iota
	IntentGuildMembers
	IntentGuildModeration
	IntentGuildEmojisAndStickers
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
	IntentMessageContent
	IntentGuildScheduledEvents
)

const (
	IntentAutoModerationConfiguration Intents = 1 << (iota + 20)
	IntentAutoModerationExecution
)

// IntentsPrivileged are the intents that must be enabled for the application
// before the gateway accepts them.
const IntentsPrivileged = IntentGuildMembers | IntentGuildPresences | IntentMessageContent

// IntentsNonPrivileged is every intent outside IntentsPrivileged.
const IntentsNonPrivileged = IntentGuilds | IntentGuildModeration | IntentGuildEmojisAndStickers |
	IntentGuildIntegrations | IntentGuildWebhooks | IntentGuildInvites | IntentGuildVoiceStates |
	IntentGuildMessages | IntentGuildMessageReactions | IntentGuildMessageTyping |
	IntentDirectMessages | IntentDirectMessageReactions | IntentDirectMessageTyping |
	IntentGuildScheduledEvents | IntentAutoModerationConfiguration | IntentAutoModerationExecution

// Has reports whether every bit of other is set.
func (i Intents) Has(other Intents) bool {
	return i&other == other
}
