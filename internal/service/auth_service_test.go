package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"countdown_timers/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

// fakeAuthRepo is a hand-written repository.Authorization.
type fakeAuthRepo struct {
	createFn func(username, hash string) (int, error)
	getFn    func(username string) (*models.User, error)

	created []string // hashes passed to Create
	lookups []string
}

func (f *fakeAuthRepo) Create(_ context.Context, username, hash string) (int, error) {
	f.created = append(f.created, hash)
	return f.createFn(username, hash)
}

func (f *fakeAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.lookups = append(f.lookups, username)
	return f.getFn(username)
}

func newTestAuth(repo *fakeAuthRepo) *AuthService {
	return NewAuthService(repo, AuthConfig{SigningKey: testSigningKey, TokenTTL: time.Minute})
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, issued time.Time, ttl time.Duration) string {
	t.Helper()
	tk := jwt.NewWithClaims(method, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
		UserID: 5,
	})
	s, err := tk.SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func TestAuthService_SignUpStoresBcryptHash(t *testing.T) {
	repo := &fakeAuthRepo{createFn: func(string, string) (int, error) { return 42, nil }}
	svc := newTestAuth(repo)

	id, err := svc.SignUp(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if len(repo.created) != 1 {
		t.Fatalf("Create calls = %d, want 1", len(repo.created))
	}
	if repo.created[0] == "s3cr3t" {
		t.Fatal("raw password stored")
	}
	if err := verifyPassword(repo.created[0], "s3cr3t"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_SignUpErrors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		repoErr  error
		calls    int
	}{
		{name: "blank password", password: "   ", calls: 0},
		{name: "repo failure", password: "pass123", repoErr: errors.New("db down"), calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAuthRepo{createFn: func(string, string) (int, error) { return 0, tt.repoErr }}
			_, err := newTestAuth(repo).SignUp(context.Background(), "bob", tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if len(repo.created) != tt.calls {
				t.Fatalf("Create calls = %d, want %d", len(repo.created), tt.calls)
			}
		})
	}
}

func TestAuthService_DisabledWithoutRepo(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{SigningKey: testSigningKey})
	if _, err := svc.SignUp(context.Background(), "a", "b"); !errors.Is(err, ErrAuthDisabled) {
		t.Fatalf("SignUp err = %v, want ErrAuthDisabled", err)
	}
	if _, err := svc.GenerateToken(context.Background(), "a", "b"); !errors.Is(err, ErrAuthDisabled) {
		t.Fatalf("GenerateToken err = %v, want ErrAuthDisabled", err)
	}
}

func TestAuthService_GenerateTokenRoundTrip(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	repo := &fakeAuthRepo{getFn: func(username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username, PasswordHash: hash}, nil
	}}
	svc := newTestAuth(repo)

	token, err := svc.GenerateToken(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if uid != 7 {
		t.Fatalf("uid = %d, want 7", uid)
	}
	if len(repo.lookups) != 1 || repo.lookups[0] != "diana" {
		t.Fatalf("lookups = %v", repo.lookups)
	}
}

func TestAuthService_GenerateTokenErrors(t *testing.T) {
	correct, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	repoErr := errors.New("query failed")

	tests := []struct {
		name    string
		get     func(string) (*models.User, error)
		wantErr error
	}{
		{
			name:    "unknown user",
			get:     func(string) (*models.User, error) { return nil, nil },
			wantErr: ErrUserNotFound,
		},
		{
			name: "wrong password",
			get: func(u string) (*models.User, error) {
				return &models.User{ID: 1, Username: u, PasswordHash: correct}, nil
			},
			wantErr: ErrInvalidPassword,
		},
		{
			name:    "repo failure",
			get:     func(string) (*models.User, error) { return nil, repoErr },
			wantErr: repoErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuth(&fakeAuthRepo{getFn: tt.get})
			_, err := svc.GenerateToken(context.Background(), "eve", "wrong")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	svc := newTestAuth(&fakeAuthRepo{})
	now := time.Now()

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}

	tests := map[string]string{
		"malformed":    "not-a-jwt",
		"foreign key":  signClaims(t, jwt.SigningMethodHS256, []byte("different-key"), now, time.Hour),
		"expired":      signClaims(t, jwt.SigningMethodHS256, []byte(testSigningKey), now.Add(-2*time.Hour), time.Hour),
		"non-hmac alg": signClaims(t, jwt.SigningMethodRS256, rsaKey, now, time.Hour),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestAuthService_TokenHonoursTTL(t *testing.T) {
	hash, _ := hashPassword("pw")
	repo := &fakeAuthRepo{getFn: func(string) (*models.User, error) {
		return &models.User{ID: 3, PasswordHash: hash}, nil
	}}
	svc := newTestAuth(repo)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(context.Background(), "u", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ParseToken(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken after TTL", err)
	}
}
