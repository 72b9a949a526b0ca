// Package auth содержит логику регистрации, входа и проверки токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// UserRepository описывает контракт для работы с аккаунтами в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет новый аккаунт и возвращает его uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByLogin возвращает аккаунт по логину или apperr.ErrNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// ListUsers возвращает все аккаунты без хэшей паролей.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает новый аккаунт с хэшированием пароля.
// Дубликат логина (без учета регистра) — apperr.ErrConflict.
func (s *AuthService) Register(ctx context.Context, userName, login, rawPassword string) (*models.User, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UserName:     userName,
		Login:        login,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UID = uid
	user.PasswordHash = ""
	return &user, nil
}

// Login проверяет пароль и выдает подписанный токен с uid и логином аккаунта.
// Неизвестный логин и неверный пароль дают одну и ту же ошибку,
// чтобы не раскрывать существование аккаунта.
func (s *AuthService) Login(ctx context.Context, login, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: invalid credentials: %w", op, apperr.ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: invalid credentials: %w", op, apperr.ErrUnauthorized)
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Login)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает uid аккаунта из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("services.auth.ValidateToken: %w: %w", apperr.ErrUnauthorized, err)
	}
	return claims.UserUID, nil
}

// ListUsers возвращает все аккаунты без паролей.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}
