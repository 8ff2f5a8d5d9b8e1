package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the password at the default cost. The
// hash embeds its own salt, so equal passwords produce distinct hashes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
