package bucket

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockBucket struct {
	mock.Mock
}

func (m *MockBucket) Upload(ctx context.Context, localPath string, key string) error {
	args := m.Called(ctx, localPath, key)
	return args.Error(0)
}

func (m *MockBucket) Put(ctx context.Context, key string, r io.Reader) error {
	args := m.Called(ctx, key, r)
	return args.Error(0)
}

func (m *MockBucket) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBucket) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
