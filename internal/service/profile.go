package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sahaya/internal/model"
	"sahaya/internal/repository"
	"sahaya/internal/storage"
	"sahaya/internal/validation"
)

// CommonDocumentResolver exposes the common identity document types.
type CommonDocumentResolver interface {
	CommonDocuments() []model.CommonDocumentType
	CommonDocument(id string) (model.CommonDocumentType, bool)
}

// CommonDocumentStatus reports whether a common document is in the vault.
type CommonDocumentStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Uploaded bool   `json:"uploaded"`
}

// ProfileService defines the profile, signature and identity-vault use cases.
type ProfileService interface {
	Profile() model.Profile
	SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error)

	Signature() (model.Signature, bool)
	SaveSignature(ctx context.Context, mimeType string, r io.Reader) (*model.Signature, error)

	CommonDocuments() []CommonDocumentStatus

	// UploadCommonDocument runs the simulated verification and then stores
	// the file in the vault. Only one upload per document type may be in
	// flight at a time.
	UploadCommonDocument(ctx context.Context, typeID string, c UploadCandidate) (*model.Document, error)
}

// ProfileOptions tunes a ProfileStore. Zero values select defaults.
type ProfileOptions struct {
	VerifyDelay       time.Duration
	MaxSignatureBytes int64
}

// ProfileStore owns the profile and signature values, persisted under
// repository.KeyProfile and repository.KeySignature.
type ProfileStore struct {
	mu        sync.Mutex
	profile   model.Profile
	signature *model.Signature

	slotMu   sync.Mutex
	inflight map[string]struct{}

	kv       repository.KeyValueRepository
	vault    VaultService
	docTypes CommonDocumentResolver
	val      *validation.Validator
	log      *zap.Logger

	verifyDelay time.Duration
	maxSigSize  int64
	now         func() time.Time
	sleep       func(time.Duration)
}

var _ ProfileService = (*ProfileStore)(nil)

func NewProfileStore(kv repository.KeyValueRepository, vault VaultService, docTypes CommonDocumentResolver, val *validation.Validator, log *zap.Logger, opts ProfileOptions) *ProfileStore {
	if log == nil {
		log = zap.NewNop()
	}
	if val == nil {
		val = validation.New()
	}
	if opts.MaxSignatureBytes <= 0 {
		opts.MaxSignatureBytes = DefaultMaxUploadBytes
	}
	return &ProfileStore{
		inflight:    make(map[string]struct{}),
		kv:          kv,
		vault:       vault,
		docTypes:    docTypes,
		val:         val,
		log:         log,
		verifyDelay: opts.VerifyDelay,
		maxSigSize:  opts.MaxSignatureBytes,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Restore loads profile and signature; each key degrades to empty on its own.
func (s *ProfileStore) Restore(ctx context.Context) error {
	var p model.Profile
	if err := restoreValue(ctx, s.kv, repository.KeyProfile, s.log, &p); err != nil {
		return err
	}
	var sig *model.Signature
	if err := restoreValue(ctx, s.kv, repository.KeySignature, s.log, &sig); err != nil {
		return err
	}
	if sig != nil && sig.DataURI == "" {
		sig = nil
	}

	s.mu.Lock()
	s.profile = p
	s.signature = sig
	s.mu.Unlock()
	return nil
}

func (s *ProfileStore) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *ProfileStore) SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.IDNumber = strings.TrimSpace(p.IDNumber)
	p.Address = strings.TrimSpace(p.Address)

	if err := s.val.Struct(p); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := persistValue(ctx, s.kv, repository.KeyProfile, p); err != nil {
		return model.Profile{}, err
	}
	s.profile = p
	s.log.Info("profile saved")
	return p, nil
}

func (s *ProfileStore) Signature() (model.Signature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signature == nil {
		return model.Signature{}, false
	}
	return *s.signature, true
}

func (s *ProfileStore) SaveSignature(ctx context.Context, mimeType string, r io.Reader) (*model.Signature, error) {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return nil, fmt.Errorf("%w: signature must be an image, got %q", ErrUnsupportedType, mimeType)
	}
	if r == nil {
		return nil, ErrContentRequired
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxSigSize+1))
	if err != nil {
		return nil, fmt.Errorf("read signature: %w", err)
	}
	if int64(len(data)) > s.maxSigSize {
		return nil, fmt.Errorf("%w: signature exceeds %d bytes", ErrTooLarge, s.maxSigSize)
	}
	if len(data) == 0 {
		return nil, ErrContentRequired
	}

	sig := &model.Signature{
		MimeType:  mt,
		DataURI:   storage.DataURI(mt, data),
		UpdatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := persistValue(ctx, s.kv, repository.KeySignature, sig); err != nil {
		return nil, err
	}
	s.signature = sig
	s.log.Info("signature saved", zap.String("mime_type", mt), zap.Int("bytes", len(data)))

	out := *sig
	return &out, nil
}

// CommonDocuments marks a type uploaded when any vault document name
// contains the type name, ignoring case.
func (s *ProfileStore) CommonDocuments() []CommonDocumentStatus {
	docs := s.vault.List()
	types := s.docTypes.CommonDocuments()

	out := make([]CommonDocumentStatus, 0, len(types))
	for _, t := range types {
		needle := strings.ToLower(t.Name)
		uploaded := false
		for _, d := range docs {
			if strings.Contains(strings.ToLower(d.Name), needle) {
				uploaded = true
				break
			}
		}
		out = append(out, CommonDocumentStatus{ID: t.ID, Name: t.Name, Uploaded: uploaded})
	}
	return out
}

func (s *ProfileStore) UploadCommonDocument(ctx context.Context, typeID string, c UploadCandidate) (*model.Document, error) {
	dt, ok := s.docTypes.CommonDocument(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: document type %q", ErrNotFound, typeID)
	}
	if !s.acquire(dt.ID) {
		return nil, ErrUploadInProgress
	}
	defer s.release(dt.ID)

	// Simulated scan. It is a fixed delay and is not cancellable.
	if s.verifyDelay > 0 {
		s.sleep(s.verifyDelay)
	}
	return s.vault.AddVerified(ctx, dt.Name, c)
}

func (s *ProfileStore) acquire(slot string) bool {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	if _, busy := s.inflight[slot]; busy {
		return false
	}
	s.inflight[slot] = struct{}{}
	return true
}

func (s *ProfileStore) release(slot string) {
	s.slotMu.Lock()
	delete(s.inflight, slot)
	s.slotMu.Unlock()
}
