package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperdoll_backend/repository"
)

type MockCharacterStore struct {
	mock.Mock
}

func (m *MockCharacterStore) FetchByName(ctx context.Context, name string) (*repository.CharacterDB, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CharacterDB), args.Error(1)
}

func (m *MockCharacterStore) FetchAll(ctx context.Context, limit int) ([]repository.CharacterDB, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CharacterDB), args.Error(1)
}

func (m *MockCharacterStore) FetchLogs(ctx context.Context, name string, limit int) ([]repository.CharacterLogDB, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CharacterLogDB), args.Error(1)
}
