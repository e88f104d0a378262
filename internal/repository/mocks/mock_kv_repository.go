package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockKeyValueRepository struct {
	mock.Mock
}

func (m *MockKeyValueRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueRepository) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
