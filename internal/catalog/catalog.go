package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sahaya/internal/model"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is the static reference data: service types, the application
// dataset used by the tracker and the common identity document types.
// It is immutable once loaded and safe for concurrent reads.
type Catalog struct {
	services        []model.Service
	applications    []model.Application
	commonDocuments []model.CommonDocumentType
	byServiceID     map[string]int
}

type document struct {
	Services        []model.Service            `yaml:"services"`
	Applications    []model.Application        `yaml:"applications"`
	CommonDocuments []model.CommonDocumentType `yaml:"commonDocuments"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file. An empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(b []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		services:        doc.Services,
		applications:    doc.Applications,
		commonDocuments: doc.CommonDocuments,
		byServiceID:     make(map[string]int, len(doc.Services)),
	}
	for i, s := range doc.Services {
		if s.ID == "" {
			return nil, fmt.Errorf("decode catalog: service %d has no id", i)
		}
		if _, dup := c.byServiceID[s.ID]; dup {
			return nil, fmt.Errorf("decode catalog: duplicate service id %q", s.ID)
		}
		c.byServiceID[s.ID] = i
	}
	for i, a := range doc.Applications {
		if a.ID == "" {
			return nil, fmt.Errorf("decode catalog: application %d has no id", i)
		}
		if !a.Status.Valid() {
			return nil, fmt.Errorf("decode catalog: application %q has unknown status %q", a.ID, a.Status)
		}
	}
	return c, nil
}

// Services returns the service types in catalog order.
func (c *Catalog) Services() []model.Service {
	out := make([]model.Service, len(c.services))
	copy(out, c.services)
	return out
}

// Service looks up a service type by id.
func (c *Catalog) Service(id string) (model.Service, bool) {
	i, ok := c.byServiceID[id]
	if !ok {
		return model.Service{}, false
	}
	return c.services[i], true
}

// ServiceName resolves a service id to its display name.
func (c *Catalog) ServiceName(id string) (string, bool) {
	s, ok := c.Service(id)
	return s.Name, ok
}

// Applications returns the tracker dataset.
func (c *Catalog) Applications() []model.Application {
	out := make([]model.Application, len(c.applications))
	copy(out, c.applications)
	return out
}

// CommonDocuments returns the identity document types shown on the profile.
func (c *Catalog) CommonDocuments() []model.CommonDocumentType {
	out := make([]model.CommonDocumentType, len(c.commonDocuments))
	copy(out, c.commonDocuments)
	return out
}

// CommonDocument looks up a common document type by id (case-insensitive).
func (c *Catalog) CommonDocument(id string) (model.CommonDocumentType, bool) {
	for _, d := range c.commonDocuments {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}
	return model.CommonDocumentType{}, false
}
