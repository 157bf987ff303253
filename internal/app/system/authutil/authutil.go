// internal/app/system/authutil/authutil.go

// Package authutil holds the credential-set model for the two login
// roles and the bcrypt helpers used to check passwords against them.
package authutil

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/normalize"
	"golang.org/x/crypto/bcrypt"
)

// CredentialSet is one role's login credential. The password is stored
// as a bcrypt hash; config may supply either a hash or, for local
// development only, a plaintext password that is hashed at startup.
type CredentialSet struct {
	Email        string
	PasswordHash string
}

// HashPassword hashes a plaintext password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Matches reports whether the supplied email and password match this
// credential set. Emails compare in normalized form; the password check
// is constant-time via bcrypt.
func (c CredentialSet) Matches(email, password string) bool {
	if normalize.Email(email) != normalize.Email(c.Email) {
		// Still burn a bcrypt comparison so the response time does not
		// reveal whether the email was the wrong half.
		_ = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
		return false
	}
	return CheckPassword(c.PasswordHash, password)
}
