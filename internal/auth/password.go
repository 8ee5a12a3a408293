package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of passwd.
func HashPassword(passwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether passwd matches the stored hash.
func CheckPassword(hash, passwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passwd)) == nil
}
