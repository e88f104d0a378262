package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sahaya/internal/model"
	"sahaya/internal/repository"
	"sahaya/internal/storage"
)

// DefaultMaxUploadBytes is the vault upload limit (5 MiB).
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

// allowedTypes maps accepted MIME types to the extension used for storage keys.
// image/jpg is not registered but browsers send it.
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
}

// UploadCandidate is what callers feed into the vault: a platform file
// handle already translated into name, type, size and a byte source.
type UploadCandidate struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// VaultService defines the personal document vault use cases.
type VaultService interface {
	// Add validates and stores a generic upload.
	Add(ctx context.Context, c UploadCandidate) (*model.Document, error)

	// AddVerified stores an upload from the profile flow under a
	// standardized "<label>_<year><ext>" name tagged profile_verified.
	AddVerified(ctx context.Context, label string, c UploadCandidate) (*model.Document, error)

	// Check validates type and size only; nothing is stored.
	Check(c UploadCandidate) (string, error)

	// Remove deletes a document. Removing an unknown id is a no-op.
	Remove(ctx context.Context, id string) error

	Find(id string) (model.Document, bool)

	// List returns documents in insertion order.
	List() []model.Document

	// Open streams the stored bytes of a document.
	Open(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)

	// PresignURL returns a time-limited download URL for a document.
	PresignURL(ctx context.Context, id string) (string, error)
}

// VaultOptions tunes a VaultStore. Zero values select defaults.
type VaultOptions struct {
	MaxUploadBytes int64
	PresignExpiry  time.Duration
}

// VaultStore owns the document collection. Bytes live in object storage;
// the metadata collection is mirrored under repository.KeyDocuments and is
// written through on every mutation while the lock is held.
type VaultStore struct {
	mu   sync.Mutex
	docs []model.Document

	kv    repository.KeyValueRepository
	store storage.Storage
	log   *zap.Logger

	maxSize       int64
	presignExpiry time.Duration
	now           func() time.Time
	newID         func() string
}

var _ VaultService = (*VaultStore)(nil)

// NewVaultStore constructs an empty vault. Call Restore before serving.
func NewVaultStore(kv repository.KeyValueRepository, store storage.Storage, log *zap.Logger, opts VaultOptions) *VaultStore {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 15 * time.Minute
	}
	return &VaultStore{
		docs:          []model.Document{},
		kv:            kv,
		store:         store,
		log:           log,
		maxSize:       opts.MaxUploadBytes,
		presignExpiry: opts.PresignExpiry,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Restore loads the persisted collection. Missing or corrupt data yields an
// empty vault; only backend read failures are returned.
func (s *VaultStore) Restore(ctx context.Context) error {
	var stored []model.Document
	if err := restoreValue(ctx, s.kv, repository.KeyDocuments, s.log, &stored); err != nil {
		return err
	}

	docs := make([]model.Document, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, d := range stored {
		if d.ID == "" {
			s.log.Warn("dropping persisted document without id", zap.String("name", d.Name))
			continue
		}
		if _, dup := seen[d.ID]; dup {
			s.log.Warn("dropping duplicate persisted document", zap.String("document_id", d.ID))
			continue
		}
		seen[d.ID] = struct{}{}
		docs = append(docs, d)
	}

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()

	s.log.Info("vault restored", zap.Int("documents", len(docs)))
	return nil
}

// Check applies the upload rules (type allow-list and size limit) without
// storing anything. It returns the normalized MIME type.
func (s *VaultStore) Check(c UploadCandidate) (string, error) {
	mt, ok := normalizeType(c.MimeType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, c.MimeType)
	}
	if c.Size > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, c.Size, s.maxSize)
	}
	return mt, nil
}

func (s *VaultStore) Add(ctx context.Context, c UploadCandidate) (*model.Document, error) {
	return s.add(ctx, c, c.Name, "")
}

func (s *VaultStore) AddVerified(ctx context.Context, label string, c UploadCandidate) (*model.Document, error) {
	mt, _ := normalizeType(c.MimeType)
	name := fmt.Sprintf("%s_%d%s", label, s.now().Year(), allowedTypes[mt])
	return s.add(ctx, c, name, model.DocumentTagProfileVerified)
}

func (s *VaultStore) add(ctx context.Context, c UploadCandidate, name, tag string) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "vault.add", trace.WithAttributes(
		attribute.String("document.mime_type", c.MimeType),
		attribute.Int64("document.size", c.Size),
	))
	defer span.End()

	mt, err := s.Check(c)
	if err != nil {
		return nil, err
	}
	if c.Content == nil {
		return nil, ErrContentRequired
	}

	id := s.newID()
	key := path.Join("documents", id+allowedTypes[mt])

	// The read may block on the client; it happens before the lock is taken.
	info, err := s.store.Put(ctx, key, io.LimitReader(c.Content, s.maxSize+1), storage.PutObjectOptions{
		Size:        c.Size,
		ContentType: mt,
		Metadata:    map[string]string{storage.MetaOriginalFilename: c.Name},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	if info.Size > s.maxSize {
		s.deleteObject(ctx, key)
		return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrTooLarge, s.maxSize)
	}

	doc := model.Document{
		ID:         id,
		Name:       name,
		MimeType:   mt,
		SizeBytes:  info.Size,
		ContentRef: info.Key,
		UploadedAt: s.now().UTC(),
		Tag:        tag,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.docs
	next := make([]model.Document, 0, len(prev)+1)
	next = append(next, prev...)
	next = append(next, doc)

	if err := persistValue(ctx, s.kv, repository.KeyDocuments, next); err != nil {
		span.RecordError(err)
		// Rollback: the collection is untouched, drop the stored bytes.
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("%w; rollback delete failed: %v", err, delErr)
		}
		return nil, err
	}
	s.docs = next

	s.log.Info("document stored",
		zap.String("document_id", doc.ID),
		zap.String("mime_type", doc.MimeType),
		zap.Int64("size", doc.SizeBytes),
		zap.String("tag", doc.Tag),
	)
	out := doc
	return &out, nil
}

func (s *VaultStore) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "vault.remove", trace.WithAttributes(attribute.String("document.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	removed := s.docs[idx]
	next := make([]model.Document, 0, len(s.docs)-1)
	next = append(next, s.docs[:idx]...)
	next = append(next, s.docs[idx+1:]...)

	if err := persistValue(ctx, s.kv, repository.KeyDocuments, next); err != nil {
		span.RecordError(err)
		return err
	}
	s.docs = next

	// Metadata is already gone; a leftover object is only an orphan.
	s.deleteObject(ctx, removed.ContentRef)
	s.log.Info("document removed", zap.String("document_id", id))
	return nil
}

func (s *VaultStore) Find(id string) (model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.docs[i], true
	}
	return model.Document{}, false
}

func (s *VaultStore) List() []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *VaultStore) Open(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	doc, ok := s.Find(id)
	if !ok {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	rc, info, err := s.store.Get(ctx, doc.ContentRef)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("open %s: %w", doc.ContentRef, err)
	}
	if info.ContentType == "" {
		info.ContentType = doc.MimeType
	}
	return rc, info, nil
}

func (s *VaultStore) PresignURL(ctx context.Context, id string) (string, error) {
	doc, ok := s.Find(id)
	if !ok {
		return "", ErrNotFound
	}
	u, err := s.store.PresignGet(ctx, doc.ContentRef, s.presignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("presign %s: %w", doc.ContentRef, err)
	}
	return u, nil
}

func (s *VaultStore) indexOf(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *VaultStore) deleteObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("object delete failed", zap.String("key", key), zap.Error(err))
	}
}

// normalizeType strips parameters and case from a MIME type and reports
// whether the result is on the allow-list.
func normalizeType(raw string) (string, bool) {
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return raw, false
	}
	_, ok := allowedTypes[mt]
	return mt, ok
}
