package validation

import (
	"fmt"
	"regexp"
)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32

	minPasswordLen = 8
)

// Имена пользователей попадают в логи и в таблицу users как есть,
// поэтому набор символов узкий: латиница, цифры, подчеркивание.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// ValidateUsername проверяет формат и длину имени пользователя.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("username cannot be empty")
	case len(username) < MinUsernameLen:
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальную длину пароля. Остальные требования
// (сложность, словарные проверки) сознательно не навязываются.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}
