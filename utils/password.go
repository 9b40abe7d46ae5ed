package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a local-account password before it is stored.
// Only the hash ever reaches the users table; OAuth accounts keep it empty.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// An empty stored hash (OAuth account) never matches.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
