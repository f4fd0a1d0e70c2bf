package domain

// Message is a single entry of a remote conversation thread.
type Message struct {
	ID        string
	Role      string
	CreatedAt int64
	Parts     []ContentPart
}

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type ContentPart struct {
	Type   ContentPartType
	Text   string
	FileID string
	// Raw keeps the remote payload for kinds the app does not understand.
	Raw string
}

type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image_file"
	// ContentPartTypeRaw marks segments that are shown as their raw payload.
	ContentPartTypeRaw ContentPartType = "raw"
)
