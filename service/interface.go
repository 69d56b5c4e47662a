package service

import (
	"context"

	"paperdoll_backend/model"
	"paperdoll_backend/repository"
)

// CharacterStore is the capability the stats service needs from the gateway.
type CharacterStore interface {
	FetchByName(ctx context.Context, name string) (*repository.CharacterDB, error)
	FetchAll(ctx context.Context, limit int) ([]repository.CharacterDB, error)
	FetchLogs(ctx context.Context, name string, limit int) ([]repository.CharacterLogDB, error)
}

type StatsServiceInterface interface {
	GetAll(ctx context.Context, limit int) ([]model.Character, error)
	GetByName(ctx context.Context, name string) (*model.CharacterProfile, error)
}

type InviteServiceInterface interface {
	List() []string
	Add(name string) ([]string, error)
	Clear()
}

type LoggerInterface interface {
	Info(msg string)
	Warning(msg string)
	Exception(msg string)
	Debug(msg string)
	Shutdown()
}
