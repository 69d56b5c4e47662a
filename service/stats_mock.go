package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperdoll_backend/model"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetAll(ctx context.Context, limit int) ([]model.Character, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Character), args.Error(1)
}

func (m *MockStatsService) GetByName(ctx context.Context, name string) (*model.CharacterProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterProfile), args.Error(1)
}
