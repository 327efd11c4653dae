package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the configured admin login. When PasswordHash is set
// it takes precedence over the plaintext Password; deployments should
// prefer the hash.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Verify checks a login attempt against the configured credentials.
// Comparisons are constant-time.
func (c Credentials) Verify(username, password string) bool {
	if c.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passOK bool
	if c.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	} else {
		passOK = c.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	return userOK && passOK
}
