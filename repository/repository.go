package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"paperdoll_backend/model"
)

// CharacterRepository is the read-only gateway to the character store. Every
// call is bounded by the configured timeout; an expired or unreachable store
// surfaces as model.ErrUnavailable, a missing document as model.ErrNotFound.
type CharacterRepository struct {
	DB      *sqlx.DB
	timeout time.Duration
}

func New(dsn string, timeout time.Duration) (*CharacterRepository, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return &CharacterRepository{DB: db, timeout: timeout}, nil
}

func (r *CharacterRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *CharacterRepository) FetchByName(ctx context.Context, name string) (*CharacterDB, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var ret CharacterDB
	query := `
		SELECT name, role, level, overall, strength, dexterity, constitution, intelligence, wisdom, mentality, guild, date_saved
		FROM characters WHERE BINARY name = ?
	`
	if err := r.DB.GetContext(ctx, &ret, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, storeErr(err)
	}

	return &ret, nil
}

func (r *CharacterRepository) FetchAll(ctx context.Context, limit int) ([]CharacterDB, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var ret []CharacterDB
	query := `
		SELECT name, role, level, overall, strength, dexterity, constitution, intelligence, wisdom, mentality, guild, date_saved
		FROM characters LIMIT ?
	`
	if err := r.DB.SelectContext(ctx, &ret, query, limit); err != nil {
		return nil, storeErr(err)
	}

	return ret, nil
}

func (r *CharacterRepository) FetchLogs(ctx context.Context, name string, limit int) ([]CharacterLogDB, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var ret []CharacterLogDB
	query := `
		SELECT character_name, level, overall, strength, dexterity, constitution, intelligence, wisdom, mentality, date_saved
		FROM character_logs WHERE BINARY character_name = ?
		ORDER BY date_saved DESC LIMIT ?
	`
	if err := r.DB.SelectContext(ctx, &ret, query, name, limit); err != nil {
		return nil, storeErr(err)
	}

	return ret, nil
}

// Connection loss, timeouts and driver errors all count as the store being
// unreachable from the caller's point of view.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.ErrUnavailable
	}
	return fmt.Errorf("%w: %v", model.ErrUnavailable, err)
}
