package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	session "github.com/Hot00Sauce/go-session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider implements session.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Register(ctx context.Context, email, password string) (*session.Credentials, error) {
	args := m.Called(ctx, email, password)
	creds, _ := args.Get(0).(*session.Credentials)
	return creds, args.Error(1)
}

func (m *MockProvider) Authenticate(ctx context.Context, email, password string) (*session.Credentials, error) {
	args := m.Called(ctx, email, password)
	creds, _ := args.Get(0).(*session.Credentials)
	return creds, args.Error(1)
}

func (m *MockProvider) Terminate(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

// blockingProvider holds every Authenticate call until released, so
// tests can pile up concurrent submissions deterministically.
type blockingProvider struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
	creds   *session.Credentials
}

func newBlockingProvider(creds *session.Credentials) *blockingProvider {
	return &blockingProvider{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
		creds:   creds,
	}
}

func (p *blockingProvider) Register(ctx context.Context, email, password string) (*session.Credentials, error) {
	return p.Authenticate(ctx, email, password)
}

func (p *blockingProvider) Authenticate(ctx context.Context, email, password string) (*session.Credentials, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	p.entered <- struct{}{}
	<-p.release
	return p.creds, nil
}

func (p *blockingProvider) Terminate(ctx context.Context, accessToken string) error {
	return nil
}

func (p *blockingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// signedTestToken mints an HS256 token the way the remote provider
// would, so claim parsing in the success path exercises real tokens.
func signedTestToken(t *testing.T, userID uuid.UUID, email string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  "authenticated",
		"exp":   expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func testCredentials(t *testing.T, email string) (*session.Credentials, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	return &session.Credentials{
		AccessToken: signedTestToken(t, userID, email, time.Now().Add(time.Hour)),
		TokenType:   "bearer",
		ExpiresIn:   3600,
		UserID:      userID.String(),
		Email:       email,
		Role:        "authenticated",
	}, userID
}
