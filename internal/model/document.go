package model

import "time"

// DocumentTagProfileVerified marks vault entries created through the profile
// common-documents flow.
const DocumentTagProfileVerified = "profile_verified"

// Document is one entry of the personal vault. ContentRef is the object
// storage key holding the bytes; the struct itself is what gets persisted.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	ContentRef string    `json:"contentRef"`
	UploadedAt time.Time `json:"uploadedAt"`
	Tag        string    `json:"tag,omitempty"`
}
