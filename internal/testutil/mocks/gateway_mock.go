package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of api.Gateway. Tests populate the
// out argument through Run on the expectation.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Get(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

func (m *MockGateway) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockGateway) Patch(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockGateway) Delete(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}
