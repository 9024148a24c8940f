package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the system has always used; changing it only
// affects newly hashed passwords.
const bcryptCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash. It never
// returns an error: empty or malformed inputs are simply a mismatch, so
// "no such user" and "wrong password" look identical upstream.
func VerifyPassword(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
