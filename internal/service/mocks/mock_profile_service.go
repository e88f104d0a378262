package mocks

import (
	"context"
	"io"

	"sahaya/internal/model"
	"sahaya/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProfileService struct {
	mock.Mock
}

var _ service.ProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) Profile() model.Profile {
	args := m.Called()
	return args.Get(0).(model.Profile)
}

func (m *MockProfileService) SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockProfileService) Signature() (model.Signature, bool) {
	args := m.Called()
	return args.Get(0).(model.Signature), args.Bool(1)
}

func (m *MockProfileService) SaveSignature(ctx context.Context, mimeType string, r io.Reader) (*model.Signature, error) {
	args := m.Called(ctx, mimeType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockProfileService) CommonDocuments() []service.CommonDocumentStatus {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.CommonDocumentStatus)
}

func (m *MockProfileService) UploadCommonDocument(ctx context.Context, typeID string, c service.UploadCandidate) (*model.Document, error) {
	args := m.Called(ctx, typeID, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
