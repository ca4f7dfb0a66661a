package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"handmade-market/internal/domain"
	tokenrepo "handmade-market/internal/repository/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[string]*domain.User{},
	}
}

func (r *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	stored := u
	r.byEmail[u.Email] = &stored
	r.byID[u.ID] = &stored
	return &stored, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

type stubTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (r *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := r.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	r.tokens[t.Token] = t
	return nil
}

func (r *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *stubTokenRepo) DeleteExpired(_ context.Context) (int, error) {
	removed := 0
	for k, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, k)
			removed++
		}
	}
	return removed, nil
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc := New(newStubUserRepo(), newStubTokenRepo(), logDiscard())

	cases := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, password := range cases {
		_, err := svc.Signup(context.Background(), SignupInput{
			Email:    "a@example.com",
			Password: password,
		})
		if err == nil {
			t.Errorf("password %q: expected validation error", password)
		}
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	svc := New(newStubUserRepo(), newStubTokenRepo(), logDiscard())

	u, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Maker@Example.COM ",
		Password: "Sturdy-Pass1",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "maker@example.com" {
		t.Errorf("expected lowercased email, got %q", u.Email)
	}
	if u.Role != domain.RoleCustomer {
		t.Errorf("expected customer role, got %q", u.Role)
	}
	if u.PasswordHash == "Sturdy-Pass1" {
		t.Error("password stored in plain text")
	}
}

func TestLoginIssuesAccessAndRefreshTokens(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := New(users, tokens, logDiscard())

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "maker@example.com",
		Password: "Sturdy-Pass1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	u, access, refresh, err := svc.Login(context.Background(), "maker@example.com", "Sturdy-Pass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("expected distinct non-empty tokens, got %q / %q", access, refresh)
	}

	got, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("lookup returned user %q, want %q", got.ID, u.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := New(newStubUserRepo(), newStubTokenRepo(), logDiscard())

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "maker@example.com",
		Password: "Sturdy-Pass1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, _, err := svc.Login(context.Background(), "maker@example.com", "wrong-Pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "Sturdy-Pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshTokenRejectedForLookup(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := New(users, tokens, logDiscard())

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "maker@example.com",
		Password: "Sturdy-Pass1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, _, refresh, err := svc.Login(context.Background(), "maker@example.com", "Sturdy-Pass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
}

func TestExpiredTokenDeletedOnValidate(t *testing.T) {
	tokens := newStubTokenRepo()
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "u1",
		Kind:      tokenrepo.KindAccess,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := New(newStubUserRepo(), tokens, logDiscard())

	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Error("expired token was not deleted")
	}
}

func TestLoginSweepsExpiredTokens(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "someone-else",
		Kind:      tokenrepo.KindRefresh,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	svc := New(users, tokens, logDiscard())

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "maker@example.com",
		Password: "Sturdy-Pass1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "maker@example.com", "Sturdy-Pass1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, ok := tokens.tokens["stale"]; ok {
		t.Error("expired token survived login sweep")
	}
	// Both freshly issued tokens are still there.
	if len(tokens.tokens) != 2 {
		t.Errorf("expected 2 live tokens, got %d", len(tokens.tokens))
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := New(users, tokens, logDiscard())

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "maker@example.com",
		Password: "Sturdy-Pass1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, access, _, err := svc.Login(context.Background(), "maker@example.com", "Sturdy-Pass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("revoked token accepted: %v", err)
	}
	// Logging out twice is a no-op.
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
