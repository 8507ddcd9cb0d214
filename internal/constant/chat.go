package constant

// Message roles stored in conversation history.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Metadata keys attached to conversation messages.
const (
	MessageMetaIntent    = "intent"
	MessageMetaSubIntent = "sub_intent"
)
