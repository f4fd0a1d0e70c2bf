package domain

import "time"

// UploadedFile is a local file forwarded to the remote file storage.
type UploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Bytes      int64     `json:"bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
	Attached   bool      `json:"attached"`
}
