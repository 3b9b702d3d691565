package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"portfolio-pulse/internal/config"
	"portfolio-pulse/internal/services/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "hunter2-long-enough"
)

type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUsersRepo) List(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auth.User), args.Error(1)
}

func (m *MockUsersRepo) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUsersRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func testService(repo *MockUsersRepo) *auth.Service {
	cfg := config.Config{
		BcryptCost:    10,
		JWTSecret:     "super-secret-jwt-key-at-least-32-chars",
		JWTAlgorithm:  "HS256",
		TokenTTLHours: 24,
	}
	return auth.NewService(repo, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubInput feeds canned lines to promptLine and canned passwords to
// promptPassword for the duration of a test.
func stubInput(t *testing.T, lines string, passwords ...string) {
	t.Helper()

	origStdin, origRead := stdin, readPassword
	t.Cleanup(func() {
		stdin, readPassword = origStdin, origRead
	})

	stdin = bufio.NewReader(strings.NewReader(lines))

	i := 0
	readPassword = func() ([]byte, error) {
		if i >= len(passwords) {
			return nil, io.EOF
		}
		pw := passwords[i]
		i++
		return []byte(pw), nil
	}
}

func TestRunCreate(t *testing.T) {
	t.Run("creates with prompted email and matching passwords", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
		stubInput(t, testEmail+"\n", testPassword, testPassword)

		err := runCreate(context.Background(), testService(repo), "")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects mismatched passwords before touching the store", func(t *testing.T) {
		repo := &MockUsersRepo{}
		stubInput(t, "", testPassword, "something-else")

		err := runCreate(context.Background(), testService(repo), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not match")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("reports duplicate email plainly", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Create", mock.Anything, mock.Anything).Return(auth.ErrDuplicate)
		stubInput(t, "", testPassword, testPassword)

		err := runCreate(context.Background(), testService(repo), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), testEmail)
	})

	t.Run("requires an email", func(t *testing.T) {
		repo := &MockUsersRepo{}
		stubInput(t, "\n")

		err := runCreate(context.Background(), testService(repo), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")
	})
}

func TestRunPasswd(t *testing.T) {
	t.Run("unknown email reported plainly", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, auth.ErrUserNotFound)
		stubInput(t, "", testPassword, testPassword)

		err := runPasswd(context.Background(), testService(repo), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no account with email")
	})

	t.Run("weak password rejected", func(t *testing.T) {
		repo := &MockUsersRepo{}
		stubInput(t, "", "abc12", "abc12")

		err := runPasswd(context.Background(), testService(repo), testEmail)
		assert.ErrorIs(t, err, auth.ErrWeakPassword)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRunDelete(t *testing.T) {
	t.Run("asks for literal yes", func(t *testing.T) {
		repo := &MockUsersRepo{}
		stubInput(t, "no\n")

		err := runDelete(context.Background(), testService(repo), testEmail)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes on confirmation", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Delete", mock.Anything, testEmail).Return(nil)
		stubInput(t, "yes\n")

		err := runDelete(context.Background(), testService(repo), testEmail)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
