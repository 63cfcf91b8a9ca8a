package models

import "time"

// RefreshToken представляет refresh token в хранилище сервера
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`   // случайное значение токена (base64)
	UserID    string    `json:"user_id"` // владелец токена
}
