package mocks

import (
	"context"

	"github.com/haguru/filmdb/pkg/databases"

	"github.com/stretchr/testify/mock"
)

// MockDBClient is a mock for interfaces.DBClient.
type MockDBClient struct {
	mock.Mock
}

// NewMockDBClient returns a mock whose expectations are asserted at test cleanup.
func NewMockDBClient(t testingT) *MockDBClient {
	m := &MockDBClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDBClient) Connect(ctx context.Context, dsn string) error {
	args := m.Called(ctx, dsn)
	return args.Error(0)
}

func (m *MockDBClient) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBClient) EnsureSchema(ctx context.Context, tableName string, spec databases.TableSpec) error {
	args := m.Called(ctx, tableName, spec)
	return args.Error(0)
}

func (m *MockDBClient) InsertOne(ctx context.Context, tableName string, document databases.Document) (interface{}, error) {
	args := m.Called(ctx, tableName, document)
	return args.Get(0), args.Error(1)
}

func (m *MockDBClient) FindOne(ctx context.Context, tableName string, filter databases.Document) (databases.Document, error) {
	args := m.Called(ctx, tableName, filter)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(databases.Document), args.Error(1)
}

func (m *MockDBClient) FindMany(ctx context.Context, tableName string, filter databases.Document, opts *databases.FindOptions) ([]databases.Document, error) {
	args := m.Called(ctx, tableName, filter, opts)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.([]databases.Document), args.Error(1)
}

func (m *MockDBClient) UpdateOne(ctx context.Context, tableName string, filter databases.Document, update databases.Document) (int64, error) {
	args := m.Called(ctx, tableName, filter, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDBClient) DeleteOne(ctx context.Context, tableName string, filter databases.Document) (int64, error) {
	args := m.Called(ctx, tableName, filter)
	return args.Get(0).(int64), args.Error(1)
}
