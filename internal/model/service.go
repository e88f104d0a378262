package model

// ServiceMode tells whether a government service can be completed online.
type ServiceMode string

const (
	ModeOnline  ServiceMode = "Online"
	ModeOffline ServiceMode = "Offline"
)

// Service is a catalog entry. RequiredDocuments are display labels only.
type Service struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Mode              ServiceMode `json:"mode" yaml:"mode"`
	Duration          string      `json:"duration" yaml:"duration"`
	RequiredDocuments []string    `json:"requiredDocuments" yaml:"requiredDocuments"`
}

// CommonDocumentType is an identity document tracked on the profile page.
type CommonDocumentType struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
