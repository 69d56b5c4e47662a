package service

import (
	"context"

	"paperdoll_backend/model"
	"paperdoll_backend/repository"
)

// StatsService answers the two read-only query shapes: a bounded listing of
// all characters, or a single character plus its recent history. It never
// writes to the store.
type StatsService struct {
	store    CharacterStore
	logLimit int
}

func NewStatsService(store CharacterStore, logLimit int) *StatsService {
	return &StatsService{store: store, logLimit: logLimit}
}

func (s *StatsService) GetAll(ctx context.Context, limit int) ([]model.Character, error) {
	rows, err := s.store.FetchAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	characters := make([]model.Character, 0, len(rows))
	for _, row := range rows {
		characters = append(characters, toCharacter(&row))
	}

	return characters, nil
}

func (s *StatsService) GetByName(ctx context.Context, name string) (*model.CharacterProfile, error) {
	row, err := s.store.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	logRows, err := s.store.FetchLogs(ctx, name, s.logLimit)
	if err != nil {
		return nil, err
	}

	logs := make([]model.CharacterLog, 0, len(logRows))
	for _, logRow := range logRows {
		logs = append(logs, toCharacterLog(&logRow))
	}

	return &model.CharacterProfile{
		Character: toCharacter(row),
		Logs:      logs,
	}, nil
}

// toCharacter maps a store row to the API shape. Overall is always recomputed
// from the six attributes; the stored column may be stale.
func toCharacter(row *repository.CharacterDB) model.Character {
	c := model.Character{
		Name:         row.Name,
		Role:         row.Role,
		Level:        row.Level,
		Strength:     row.Strength,
		Dexterity:    row.Dexterity,
		Constitution: row.Constitution,
		Intelligence: row.Intelligence,
		Wisdom:       row.Wisdom,
		Mentality:    row.Mentality,
		Guild:        row.Guild,
		DateSaved:    row.DateSaved,
	}
	if c.Guild == "" {
		c.Guild = "none"
	}
	c.Overall = c.AttributeSum()
	return c
}

func toCharacterLog(row *repository.CharacterLogDB) model.CharacterLog {
	l := model.CharacterLog{
		Level:        row.Level,
		Strength:     row.Strength,
		Dexterity:    row.Dexterity,
		Constitution: row.Constitution,
		Intelligence: row.Intelligence,
		Wisdom:       row.Wisdom,
		Mentality:    row.Mentality,
		DateSaved:    row.DateSaved,
	}
	l.Overall = l.AttributeSum()
	return l
}
