// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/charmbracelet/ssh"
)

// Token is the access token clients present as their SSH password.
type Token struct {
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func newToken(ttl time.Duration) (*Token, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	now := time.Now()
	return &Token{
		Value:     hex.EncodeToString(tokenBytes),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Expired reports whether the token is past its expiry at now.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// ValidateToken reports whether value is the server's unexpired access token.
func (s *Server) ValidateToken(value string) bool {
	if s.token.Expired(time.Now()) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(value), []byte(s.token.Value)) == 1
}

// passwordHandler handles password authentication using the access token.
func (s *Server) passwordHandler(ctx ssh.Context, password string) bool {
	if !s.ValidateToken(password) {
		s.logger.Warn("Invalid token authentication attempt", "user", ctx.User(), "remote", ctx.RemoteAddr())
		return false
	}
	s.logger.Debug("Token authentication successful", "user", ctx.User())
	return true
}

// publicKeyHandler rejects all public key authentication.
func (s *Server) publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return false
}
