package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"handmade-market/internal/domain"
	tokenrepo "handmade-market/internal/repository/token"
)

const (
	kindAccess  = tokenrepo.KindAccess
	kindRefresh = tokenrepo.KindRefresh
)

type tokenRepo interface {
	Create(ctx context.Context, token tokenrepo.Token) error
	Get(ctx context.Context, token string) (*tokenrepo.Token, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}

type tokenManager struct {
	repo   tokenRepo
	logger *log.Logger
}

func newTokenManager(repo tokenRepo, logger *log.Logger) *tokenManager {
	return &tokenManager{
		repo:   repo,
		logger: logger,
	}
}

func (m *tokenManager) Issue(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Token:     token,
			UserID:    userID,
			Kind:      kind,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

func (m *tokenManager) Validate(ctx context.Context, token string) (string, bool) {
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		return "", false
	}
	if meta.Kind != kindAccess {
		return "", false
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return "", false
	}
	return meta.UserID, true
}

// SweepExpired drops all expired rows. Best-effort housekeeping run on
// login so the tokens table does not accumulate stale entries.
func (m *tokenManager) SweepExpired(ctx context.Context) {
	n, err := m.repo.DeleteExpired(ctx)
	if err != nil {
		m.logger.Printf("sweep expired tokens: %v", err)
		return
	}
	if n > 0 {
		m.logger.Printf("removed %d expired tokens", n)
	}
}

func (m *tokenManager) Revoke(ctx context.Context, token string) error {
	err := m.repo.Delete(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
