package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"hrledger/internal/domain/hrerr"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword requires at least MinPasswordLength characters and no whitespace.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password shorter than %d characters: %w", MinPasswordLength, hrerr.ErrInvalidPassword)
	}
	if strings.IndexFunc(password, unicode.IsSpace) >= 0 {
		return fmt.Errorf("password contains whitespace: %w", hrerr.ErrInvalidPassword)
	}
	return nil
}
