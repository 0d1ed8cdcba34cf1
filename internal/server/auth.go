package server

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (12 is a good balance of security and performance)
const bcryptCost = 12

// maxAuthAttempts is how many password tries a session gets before being
// disconnected.
const maxAuthAttempts = 3

// HashPassword hashes a console password for storage in the config file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a password against its bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Client is a line-oriented console session transport.
type Client interface {
	ReadLine() (string, error)
	WriteLine(message string) error
	Close() error
	RemoteAddr() string
}

// authenticate runs the password challenge for a session. An empty
// configured hash skips authentication entirely (local development).
func (c *Console) authenticate(client Client) bool {
	if c.config.PasswordHash == "" {
		return true
	}
	for attempt := 0; attempt < maxAuthAttempts; attempt++ {
		if err := client.WriteLine("Password:"); err != nil {
			return false
		}
		password, err := client.ReadLine()
		if err != nil {
			return false
		}
		if CheckPassword(c.config.PasswordHash, password) {
			return true
		}
		client.WriteLine("Incorrect password.")
	}
	return false
}
