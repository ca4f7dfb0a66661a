package token

import (
	"context"
	"time"
)

// Kind distinguishes short-lived access tokens from refresh tokens.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

type Token struct {
	Token     string
	UserID    string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}
