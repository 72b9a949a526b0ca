package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// Леджер хранится одной строкой на аккаунт: колонка groups — jsonb-документ
// целиком, version — счетчик для оптимистической проверки при записи.

// GetLedger возвращает леджер аккаунта или apperr.ErrNotFound.
func (s *Storage) GetLedger(ctx context.Context, userUID string) (*models.Ledger, error) {
	const op = "repository.GetLedger"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, groups, version, created_at, updated_at
			  FROM ledgers
			  WHERE user_uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	l := &models.Ledger{}
	var groupsRaw []byte
	if err := row.Scan(&l.UserUID, &groupsRaw, &l.Version, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: user %s: %w", op, userUID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(groupsRaw, &l.Groups); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// CreateLedger вставляет новый леджер с version = 1.
// Повторная вставка для того же аккаунта — apperr.ErrConflict.
func (s *Storage) CreateLedger(ctx context.Context, ledger *models.Ledger) error {
	const op = "repository.CreateLedger"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	groupsRaw, err := json.Marshal(ledger.Groups)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO ledgers (user_uid, groups, version)
			  VALUES ($1, $2, 1)`
	if _, err = s.DB.ExecContext(ctx, query, ledger.UserUID, groupsRaw); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: user %s: %w", op, ledger.UserUID, apperr.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateLedger перезаписывает документ целиком с проверкой версии.
// Если строка с ожидаемой версией не найдена (параллельная запись успела
// раньше), возвращает apperr.ErrConflict — вызывающий перечитывает и повторяет.
func (s *Storage) UpdateLedger(ctx context.Context, ledger *models.Ledger) error {
	const op = "repository.UpdateLedger"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	groupsRaw, err := json.Marshal(ledger.Groups)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE ledgers
			  SET groups = $1,
			      version = version + 1,
			      updated_at = now()
			  WHERE user_uid = $2 AND version = $3`
	result, err := s.DB.ExecContext(ctx, query, groupsRaw, ledger.UserUID, ledger.Version)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: user %s version %d: %w", op, ledger.UserUID, ledger.Version, apperr.ErrConflict)
	}
	return nil
}

// ListLedgers возвращает леджеры всех аккаунтов для публичной агрегации.
func (s *Storage) ListLedgers(ctx context.Context) ([]*models.Ledger, error) {
	const op = "repository.ListLedgers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, groups, version, created_at, updated_at
			  FROM ledgers
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Ledger
	for rows.Next() {
		l := &models.Ledger{}
		var groupsRaw []byte
		if err = rows.Scan(&l.UserUID, &groupsRaw, &l.Version, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(groupsRaw, &l.Groups); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
