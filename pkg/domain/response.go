package domain

type BlockKind string

const (
	BlockKindText  BlockKind = "text"
	BlockKindImage BlockKind = "image"
	BlockKindRaw   BlockKind = "raw"
)

// RenderedMessage is a message ready to be shown in the browser.
type RenderedMessage struct {
	ID     string  `json:"id"`
	Role   string  `json:"role"`
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Kind BlockKind `json:"kind"`
	HTML string    `json:"html,omitempty"`

	Image *Image `json:"image,omitempty"`
}

type Image struct {
	FileID   string `json:"file_id"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	DataURI  string `json:"data_uri"`
}
