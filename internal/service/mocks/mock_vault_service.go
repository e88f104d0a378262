package mocks

import (
	"context"
	"io"

	"sahaya/internal/model"
	"sahaya/internal/service"
	"sahaya/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockVaultService struct {
	mock.Mock
}

var _ service.VaultService = (*MockVaultService)(nil)

func (m *MockVaultService) Add(ctx context.Context, c service.UploadCandidate) (*model.Document, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockVaultService) AddVerified(ctx context.Context, label string, c service.UploadCandidate) (*model.Document, error) {
	args := m.Called(ctx, label, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockVaultService) Check(c service.UploadCandidate) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}

func (m *MockVaultService) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVaultService) Find(id string) (model.Document, bool) {
	args := m.Called(id)
	return args.Get(0).(model.Document), args.Bool(1)
}

func (m *MockVaultService) List() []model.Document {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Document)
}

func (m *MockVaultService) Open(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockVaultService) PresignURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
