package events

const (
	UserRegistered     = "USER_REGISTERED"
	UserSignedIn       = "USER_SIGNED_IN"
	ChatSessionCreated = "CHAT_SESSION_CREATED"
	ChatSessionRenamed = "CHAT_SESSION_RENAMED"
	ChatSessionSynced  = "CHAT_SESSION_SYNCED"
	ChatSessionDeleted = "CHAT_SESSION_DELETED"
	ReplyGenerated     = "REPLY_GENERATED"
)

// AllTypes is every event type the application publishes.
var AllTypes = []string{
	UserRegistered,
	UserSignedIn,
	ChatSessionCreated,
	ChatSessionRenamed,
	ChatSessionSynced,
	ChatSessionDeleted,
	ReplyGenerated,
}
