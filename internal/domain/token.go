package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

const (
	UserActivationScope string = "user_activation"
	tokenLength         int    = 32
)

// Token is a one-time credential, stored only as a SHA-256 hash. The
// plaintext leaves the process exactly once, inside the activation email.
type Token struct {
	Plaintext string
	Hash      []byte
	UserId    int64
	Expiry    time.Time
	Scope     string
}

// HashToken derives the stored form of a plaintext token. Lookups must hash
// the submitted value the same way.
func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

func GenerateToken(userId int64, ttl time.Duration, scope string) (*Token, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(buf)

	return &Token{
		Plaintext: plaintext,
		Hash:      HashToken(plaintext),
		UserId:    userId,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}, nil
}

type TokenRepository interface {
	Create(context.Context, *Token) error
	DeleteAllForUser(ctx context.Context, tokenScope string, userID int) error
}
