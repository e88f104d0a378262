package model

import "time"

type Profile struct {
	Name     string `json:"name" validate:"omitempty,max=120"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	IDNumber string `json:"idNumber" validate:"omitempty,max=32"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// Signature is the single stored signature image, kept inline as a data URI.
type Signature struct {
	MimeType  string    `json:"mimeType"`
	DataURI   string    `json:"dataUri"`
	UpdatedAt time.Time `json:"updatedAt"`
}
