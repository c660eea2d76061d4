package service

import (
	"testing"
	"time"

	"github.com/lshigami/Oranguru/config"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/middleware"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (*gorm.DB, AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = time.Hour
	return db, NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc, cfg := newAuthFixture(t)

	registered, err := svc.Register(dto.RegisterRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, string(model.RoleUser), registered.User.Role)

	logged, err := svc.Login(dto.LoginRequest{Email: "alex@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := middleware.ParseToken(logged.Token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.False(t, claims.IsAdmin())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Register(dto.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterRequest{Name: "B", Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLogin_BadCredentials(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Register(dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, err = svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BannedUser(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	registered, err := svc.Register(dto.RegisterRequest{Name: "A", Email: "banned@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", registered.User.ID).Update("banned", true).Error)

	_, err = svc.Login(dto.LoginRequest{Email: "banned@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
