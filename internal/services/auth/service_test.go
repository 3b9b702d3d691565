package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"portfolio-pulse/internal/config"
	"portfolio-pulse/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	testEmail    = "admin@example.com"
	testPassword = "hunter2-long-enough"
)

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockUsersRepo) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUsersRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{
		BcryptCost:    10,
		JWTSecret:     "super-secret-jwt-key-at-least-32-chars",
		JWTAlgorithm:  "HS256",
		TokenTTLHours: 24,
	}
}

func hashedTestUser(t *testing.T) *User {
	t.Helper()

	hash, err := crypto.HashPassword(testPassword, 10)
	require.NoError(t, err)

	now := time.Now().UTC()
	return &User{
		ID:           bson.NewObjectID(),
		Email:        testEmail,
		PasswordHash: hash,
		Role:         RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestService_Login(t *testing.T) {
	cfg := testConfig()
	user := hashedTestUser(t)

	tests := []struct {
		name    string
		req     LoginRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil)
			},
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "nobody@example.com", Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: testEmail, Password: "WrongPassword"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "storage failure surfaces as-is",
			req:  LoginRequest{Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepo{}
			tt.setup(repo)

			svc := NewService(repo, cfg, silentLogger)
			resp, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, testEmail, resp.User.Email)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login_EmailIsCaseSensitive(t *testing.T) {
	cfg := testConfig()

	repo := &MockUsersRepo{}
	repo.On("FindByEmail", mock.Anything, "Admin@Example.com").Return(nil, ErrUserNotFound)

	svc := NewService(repo, cfg, silentLogger)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "Admin@Example.com", Password: testPassword})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertCalled(t, "FindByEmail", mock.Anything, "Admin@Example.com")
}

func TestService_Login_TokenClaims(t *testing.T) {
	cfg := testConfig()
	user := hashedTestUser(t)

	repo := &MockUsersRepo{}
	repo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil)

	svc := NewService(repo, cfg, silentLogger)
	resp, err := svc.Login(context.Background(), LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, testEmail, claims["email"])
	assert.Equal(t, RoleAdmin, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, time.Minute)
}

func TestService_Login_TamperedTokenRejected(t *testing.T) {
	cfg := testConfig()
	user := hashedTestUser(t)

	repo := &MockUsersRepo{}
	repo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil)

	svc := NewService(repo, cfg, silentLogger)
	resp, err := svc.Login(context.Background(), LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	tampered := resp.Token[:len(resp.Token)-2] + "xx"
	_, err = jwt.Parse(tampered, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.Error(t, err)
}

func TestService_CreateAdmin(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*MockUsersRepo)
		wantErr  error
	}{
		{
			name:     "successful creation",
			email:    testEmail,
			password: testPassword,
			setup: func(repo *MockUsersRepo) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
			},
		},
		{
			name:     "weak password rejected before hashing",
			email:    testEmail,
			password: "abc12",
			setup:    func(repo *MockUsersRepo) {},
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "duplicate email",
			email:    testEmail,
			password: testPassword,
			setup: func(repo *MockUsersRepo) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(ErrDuplicate)
			},
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepo{}
			tt.setup(repo)

			svc := NewService(repo, cfg, silentLogger)
			user, err := svc.CreateAdmin(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, RoleAdmin, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, crypto.CheckPassword(tt.password, user.PasswordHash))
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	cfg := testConfig()
	user := hashedTestUser(t)

	tests := []struct {
		name        string
		email       string
		newPassword string
		setup       func(*MockUsersRepo)
		wantErr     error
	}{
		{
			name:        "successful rotation",
			email:       testEmail,
			newPassword: "brand-new-password",
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil)
				repo.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:        "weak password rejected",
			email:       testEmail,
			newPassword: "short",
			setup:       func(repo *MockUsersRepo) {},
			wantErr:     ErrWeakPassword,
		},
		{
			name:        "unknown user",
			email:       "nobody@example.com",
			newPassword: "brand-new-password",
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)
			},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepo{}
			tt.setup(repo)

			svc := NewService(repo, cfg, silentLogger)
			err := svc.ChangePassword(context.Background(), tt.email, tt.newPassword)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_ListAdmins(t *testing.T) {
	repo := &MockUsersRepo{}
	users := []*User{hashedTestUser(t), hashedTestUser(t)}
	repo.On("List", mock.Anything).Return(users, nil)

	svc := NewService(repo, testConfig(), silentLogger)
	got, err := svc.ListAdmins(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestService_DeleteAdmin(t *testing.T) {
	repo := &MockUsersRepo{}
	repo.On("Delete", mock.Anything, testEmail).Return(nil)
	repo.On("Delete", mock.Anything, "nobody@example.com").Return(ErrUserNotFound)

	svc := NewService(repo, testConfig(), silentLogger)

	assert.NoError(t, svc.DeleteAdmin(context.Background(), testEmail))
	assert.ErrorIs(t, svc.DeleteAdmin(context.Background(), "nobody@example.com"), ErrUserNotFound)
	repo.AssertExpectations(t)
}
