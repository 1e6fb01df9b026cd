package snowflake

// Kind is the phantom tag that makes identifiers of different entities
// distinct types. The set of kinds is closed.
type Kind interface {
	kindName() string
}

type (
	Application       struct{}
	Attachment        struct{}
	AuditLogEntry     struct{}
	Channel           struct{}
	Command           struct{}
	CommandPermission struct{}
	CommandVersion    struct{}
	Emoji             struct{}
	Entitlement       struct{}
	ForumTag          struct{}
	Generic           struct{}
	Guild             struct{}
	Integration       struct{}
	Interaction       struct{}
	Message           struct{}
	Role              struct{}
	Rule              struct{}
	ScheduledEvent    struct{}
	Sku               struct{}
	StageInstance     struct{}
	Sticker           struct{}
	StickerPack       struct{}
	StickerPackBanner struct{}
	Target            struct{}
	User              struct{}
	Webhook           struct{}
)

func (Application) kindName() string       { return "ApplicationID" }
func (Attachment) kindName() string        { return "AttachmentID" }
func (AuditLogEntry) kindName() string     { return "AuditLogEntryID" }
func (Channel) kindName() string           { return "ChannelID" }
func (Command) kindName() string           { return "CommandID" }
func (CommandPermission) kindName() string { return "CommandPermissionID" }
func (CommandVersion) kindName() string    { return "CommandVersionID" }
func (Emoji) kindName() string             { return "EmojiID" }
func (Entitlement) kindName() string       { return "EntitlementID" }
func (ForumTag) kindName() string          { return "ForumTagID" }
func (Generic) kindName() string           { return "GenericID" }
func (Guild) kindName() string             { return "GuildID" }
func (Integration) kindName() string       { return "IntegrationID" }
func (Interaction) kindName() string       { return "InteractionID" }
func (Message) kindName() string           { return "MessageID" }
func (Role) kindName() string              { return "RoleID" }
func (Rule) kindName() string              { return "RuleID" }
func (ScheduledEvent) kindName() string    { return "ScheduledEventID" }
func (Sku) kindName() string               { return "SkuID" }
func (StageInstance) kindName() string     { return "StageInstanceID" }
func (Sticker) kindName() string           { return "StickerID" }
func (StickerPack) kindName() string       { return "StickerPackID" }
func (StickerPackBanner) kindName() string { return "StickerPackBannerID" }
func (Target) kindName() string            { return "TargetID" }
func (User) kindName() string              { return "UserID" }
func (Webhook) kindName() string           { return "WebhookID" }

type (
	ApplicationID       = ID[Application]
	AttachmentID        = ID[Attachment]
	AuditLogEntryID     = ID[AuditLogEntry]
	ChannelID           = ID[Channel]
	CommandID           = ID[Command]
	CommandPermissionID = ID[CommandPermission]
	CommandVersionID    = ID[CommandVersion]
	EmojiID             = ID[Emoji]
	EntitlementID       = ID[Entitlement]
	ForumTagID          = ID[ForumTag]
	GenericID           = ID[Generic]
	GuildID             = ID[Guild]
	IntegrationID       = ID[Integration]
	InteractionID       = ID[Interaction]
	MessageID           = ID[Message]
	RoleID              = ID[Role]
	RuleID              = ID[Rule]
	ScheduledEventID    = ID[ScheduledEvent]
	SkuID               = ID[Sku]
	StageInstanceID     = ID[StageInstance]
	StickerID           = ID[Sticker]
	StickerPackID       = ID[StickerPack]
	StickerPackBannerID = ID[StickerPackBanner]
	TargetID            = ID[Target]
	UserID              = ID[User]
	WebhookID           = ID[Webhook]
)
