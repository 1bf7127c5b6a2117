package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialChecker decides whether a username and password may log in.
type CredentialChecker interface {
	Check(username, password string) bool
}

// FixedCredentials accepts the single configured account. Only a bcrypt
// hash of the password is kept in memory.
type FixedCredentials struct {
	username string
	hash     []byte
}

func NewFixedCredentials(username, password string) (*FixedCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return &FixedCredentials{username: username, hash: hash}, nil
}

func (c *FixedCredentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}
