// Package models содержит доменные модели сервиса учёта взносов:
// аккаунт пользователя и документ-леджер с группами и записями.
package models

import "time"

// User представляет зарегистрированный аккаунт.
type User struct {
	UID          string     `json:"userID"`   // Уникальный идентификатор аккаунта
	UserName     string     `json:"userName"` // Отображаемое имя
	Login        string     `json:"user"`     // Логин (уникальный, хранится в нижнем регистре)
	PasswordHash string     `json:"-"`        // Хэш пароля, наружу не отдается
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}
