package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/shivaganesh9515/nextgen-organic-backend/pkg/auth"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

type memoryUsers struct {
	byID    map[uuid.UUID]*models.User
	byEmail map[string]*models.User
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

var testJWT = config.JWTConfig{
	Secret:            "test-secret-not-for-production",
	Issuer:            "nextgen-organic",
	ExpirationMinutes: 60,
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Users:    &memoryUsers{byID: map[uuid.UUID]*models.User{}, byEmail: map[string]*models.User{}},
		JWT:      testJWT,
		Password: config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		Logger:   logger.New(logger.Options{Level: zerolog.Disabled}),
		Now:      func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{
		Email:     "Asha@Example.com",
		Password:  "correct horse",
		FirstName: "Asha",
		LastName:  "Patel",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", session.User.Email)
	assert.Equal(t, enums.RoleCustomer, session.User.Role)

	claims, err := pkgauth.ParseAccessToken(testJWT, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, enums.RoleCustomer, claims.Role)

	login, err := svc.Login(ctx, "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	input := RegisterInput{Email: "dup@example.com", Password: "password123"}

	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestRegisterShortPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.example", Password: "short"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "user@example.com", "nope nope nope")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "password123")

	for _, err := range []error{wrongPassword, unknownEmail} {
		require.Error(t, err)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
		assert.Equal(t, "invalid credentials", appErr.Message())
	}
}
