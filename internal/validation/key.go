package validation

import (
	"fmt"
	"regexp"
)

// KeyPattern определяет допустимый формат ключа документа.
// Строчные латинские буквы, цифры и дефисы, например "greenteam-equipment".
// Длина: 3-64 символа.
var KeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,63}$`)

// ValidateKey проверяет, что ключ документа соответствует требованиям
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if !KeyPattern.MatchString(key) {
		return fmt.Errorf("key must be 3-64 lowercase letters, digits or hyphens")
	}

	return nil
}
