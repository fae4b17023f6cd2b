package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password too long")

// ValidatePassword reports whether password can be hashed.
func ValidatePassword(password string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
