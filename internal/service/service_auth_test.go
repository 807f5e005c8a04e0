package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/mock"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAppConfig = config.App{
	TokenSignKey:     "test-sign-key",
	TokenIssuer:      "warehouse-keeper-test",
	TokenDuration:    24 * time.Hour,
	PasswordHashCost: bcrypt.MinCost,
	ResetTokenTTL:    30 * time.Minute,
	FrontendURL:      "http://localhost:3000/",
}

// testClock is a settable clock injected in place of time.Now.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockIDGenerator, *testClock) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)
	clock := newTestClock()

	svc := NewAuthService(users, validators.NewRequestValidator(0), testAppConfig, logger.Nop()).(*authService)
	svc.idGenerator = ids
	svc.now = clock.Now

	return svc, users, ids, clock
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	digest, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return digest
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, ids, clock := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound),
		ids.EXPECT().Generate().Return("user-1"),
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "user-1", u.ID)
				assert.Equal(t, "Ann", u.Name)
				assert.Equal(t, "ann@example.com", u.Email)
				assert.NotEqual(t, "secret1", u.Password)
				assert.True(t, utils.ComparePassword(u.Password, "secret1"))
				assert.Equal(t, models.DefaultUserPhoto, u.Photo)
				assert.Equal(t, models.DefaultUserPhone, u.Phone)
				assert.Equal(t, clock.now, u.CreatedAt)
				return u, nil
			},
		),
	)

	user, token, err := svc.Register(ctx, models.RegisterRequest{
		Name:     " Ann ",
		Email:    " Ann@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user-1", token.UserID)
	assert.NotEmpty(t, token.SignedString)
	assert.True(t, svc.VerifySession(ctx, token.SignedString))
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "missing name", req: models.RegisterRequest{Email: "a@b.co", Password: "secret1"}},
		{name: "missing email", req: models.RegisterRequest{Name: "Ann", Password: "secret1"}},
		{name: "missing password", req: models.RegisterRequest{Name: "Ann", Email: "a@b.co"}},
		{name: "malformed email", req: models.RegisterRequest{Name: "Ann", Email: "not-an-email", Password: "secret1"}},
		{name: "short password", req: models.RegisterRequest{Name: "Ann", Email: "a@b.co", Password: "12345"}},
		{name: "password over 72 bytes", req: models.RegisterRequest{Name: "Ann", Email: "a@b.co", Password: strings.Repeat("p", 73)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, _, _ := newTestAuthSvc(t, ctrl)

			_, _, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{ID: "user-1"}, nil)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ANN@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "This email is already in use", err.Error())
}

func TestAuthService_Register_UniqueIndexRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, ids, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
	ids.EXPECT().Generate().Return("user-2")
	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, dbErr)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)

	var svcErr *Error
	assert.False(t, errors.As(err, &svcErr), "infrastructure failures must not look like client errors")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	digest := mustHash(t, "secret1")
	stored := models.User{ID: "user-1", Name: "Ann", Email: "ann@example.com", Password: digest}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByEmail(gomock.Any(), "ann@example.com").Return(stored, nil)

		user, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "Ann@Example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "user-1", token.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByEmail(gomock.Any(), "ann@example.com").Return(stored, nil)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ann@example.com", Password: "secret2"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrAuth)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByEmail(gomock.Any(), "bob@example.com").Return(models.User{}, store.ErrUserNotFound)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _ := newTestAuthSvc(t, ctrl)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ann@example.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

// ── Sessions ─────────────────────────────────────────────────────────────────

func TestAuthService_VerifySession_Lifetime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, clock := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.createToken("user-1", clock.Now())
	require.NoError(t, err)

	clock.Advance(23*time.Hour + 59*time.Minute)
	assert.True(t, svc.VerifySession(ctx, token.SignedString), "session must be live just before 24h")

	clock.Advance(2 * time.Minute)
	assert.False(t, svc.VerifySession(ctx, token.SignedString), "session must be rejected after 24h")
}

func TestAuthService_VerifySession_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, clock := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	foreign, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, "user-1", clock.Now(), time.Hour, "another-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWTToken("someone-else", "user-1", clock.Now(), time.Hour, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	assert.False(t, svc.VerifySession(ctx, ""))
	assert.False(t, svc.VerifySession(ctx, "not.a.jwt"))
	assert.False(t, svc.VerifySession(ctx, foreign.SignedString))
	assert.False(t, svc.VerifySession(ctx, otherIssuer.SignedString))
}

func TestAuthService_Authorize(t *testing.T) {
	t.Run("resolves user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, clock := newTestAuthSvc(t, ctrl)
		token, err := svc.createToken("user-1", clock.Now())
		require.NoError(t, err)

		users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{ID: "user-1", Name: "Ann"}, nil)

		user, err := svc.Authorize(context.Background(), token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
	})

	t.Run("deleted user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, clock := newTestAuthSvc(t, ctrl)
		token, err := svc.createToken("user-1", clock.Now())
		require.NoError(t, err)

		users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{}, store.ErrUserNotFound)

		_, err = svc.Authorize(context.Background(), token.SignedString)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, clock := newTestAuthSvc(t, ctrl)
		token, err := svc.createToken("user-1", clock.Now())
		require.NoError(t, err)
		clock.Advance(25 * time.Hour)

		_, err = svc.Authorize(context.Background(), token.SignedString)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("accepted just before 24h", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, clock := newTestAuthSvc(t, ctrl)
		token, err := svc.createToken("user-1", clock.Now())
		require.NoError(t, err)
		clock.Advance(23*time.Hour + 59*time.Minute)

		users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{ID: "user-1"}, nil)

		user, err := svc.Authorize(context.Background(), token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("rejected just after 24h", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, clock := newTestAuthSvc(t, ctrl)
		token, err := svc.createToken("user-1", clock.Now())
		require.NoError(t, err)
		clock.Advance(24*time.Hour + time.Minute)

		_, err = svc.Authorize(context.Background(), token.SignedString)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("no token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _ := newTestAuthSvc(t, ctrl)

		_, err := svc.Authorize(context.Background(), "")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestAuthService_ChangePassword(t *testing.T) {
	digest := mustHash(t, "secret1")

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, clock := newTestAuthSvc(t, ctrl)
		ctx := context.Background()

		users.EXPECT().FindUserByID(ctx, "user-1").Return(models.User{ID: "user-1", Password: digest}, nil)
		users.EXPECT().UpdateUserPassword(ctx, "user-1", gomock.Any(), clock.now).DoAndReturn(
			func(_ context.Context, _ string, newDigest string, _ time.Time) error {
				assert.True(t, utils.ComparePassword(newDigest, "secret2"))
				return nil
			},
		)

		err := svc.ChangePassword(ctx, "user-1", models.ChangePasswordRequest{OldPassword: "secret1", Password: "secret2"})
		require.NoError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{ID: "user-1", Password: digest}, nil)

		err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{OldPassword: "nope12", Password: "secret2"})
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _ := newTestAuthSvc(t, ctrl)

		err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{Password: "secret2"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("new password over 72 bytes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _ := newTestAuthSvc(t, ctrl)

		err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{OldPassword: "secret1", Password: strings.Repeat("p", 73)})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("user gone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, users, _, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{}, store.ErrUserNotFound)

		err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{OldPassword: "secret1", Password: "secret2"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
