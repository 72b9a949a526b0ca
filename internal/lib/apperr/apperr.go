// Package apperr определяет таксономию ошибок приложения.
//
// Ошибки бизнес-логики и хранилища оборачивают один из сентинелов этого
// пакета через fmt.Errorf("%s: %w", op, err), а на границе HTTP-обработчика
// errors.Is вместе со Status преобразует их в код ответа.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation — отсутствующие или некорректные входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized — отсутствующий, просроченный или поддельный токен,
	// а также неверные учетные данные при входе.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict — дубликат имени: логин, группа или запись уже существуют.
	ErrConflict = errors.New("already exists")
	// ErrNotFound — запрошенный документ, группа или запись отсутствуют.
	ErrNotFound = errors.New("not found")
	// ErrStore — сбой нижележащего хранилища.
	ErrStore = errors.New("storage failure")
)

// Status возвращает HTTP-статус, соответствующий ошибке.
// Неизвестные ошибки считаются внутренними (500).
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
