package models

import "time"

// User представляет учетную запись сотрудника на сервере
type User struct {
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`            // UUID пользователя
	Username     string     `json:"username"`      // уникальный username
	PasswordHash string     `json:"password_hash"` // bcrypt хеш пароля
}
