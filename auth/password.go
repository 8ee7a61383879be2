package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrInvalidPassword = errors.New("invalid password")

// HashPassword возвращает "соль$хеш" в hex, argon2id
func HashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// CheckPassword сравнивает пароль с сохраненным "соль$хеш"
func CheckPassword(stored, password string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return errors.New("invalid password format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return err
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if subtle.ConstantTimeCompare(hash, want) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
