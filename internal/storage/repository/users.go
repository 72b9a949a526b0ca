// Package repository реализует методы доступа к таблицам users и ledgers.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
	"github.com/magabrotheeeer/fee-tracker/internal/storage"
)

// Storage расширяет соединение с базой методами репозитория.
type Storage struct {
	*storage.Storage
}

// New оборачивает соединение с базой в репозиторий.
func New(db *storage.Storage) *Storage {
	return &Storage{db}
}

// RegisterUser сохраняет новый аккаунт и возвращает его uid.
// Логин хранится в нижнем регистре, дубликат — apperr.ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "repository.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (user_name, login, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UserName, strings.ToLower(user.Login), user.PasswordHash).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: login %q: %w", op, user.Login, apperr.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByLogin возвращает аккаунт по логину (регистр не учитывается).
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "repository.GetUserByLogin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_name, login, password_hash, created_at, updated_at
			  FROM users
			  WHERE login = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, strings.ToLower(login))

	var updatedAt sql.NullTime
	if err := row.Scan(&u.UID, &u.UserName, &u.Login, &u.PasswordHash,
		&u.CreatedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: login %q: %w", op, login, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// ListUsers возвращает все аккаунты без хэшей паролей, в порядке регистрации.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "repository.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_name, login, created_at, updated_at
			  FROM users
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var updatedAt sql.NullTime
		if err = rows.Scan(&u.UID, &u.UserName, &u.Login, &u.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if updatedAt.Valid {
			u.UpdatedAt = &updatedAt.Time
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
