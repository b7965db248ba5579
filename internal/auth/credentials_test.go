package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"options-trade-log-go/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Trade{}))
	return db
}

func TestRegisterValidation(t *testing.T) {
	store := NewCredentialStore(newTestDB(t), 4)

	testCases := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{name: "missing email", email: "", password: "secret1", field: "email"},
		{name: "malformed email", email: "not-an-email", password: "secret1", field: "email"},
		{name: "missing domain", email: "a@b", password: "secret1", field: "email"},
		{name: "short password", email: "a@x.com", password: "12345", field: "password"},
		{name: "empty password", email: "a@x.com", password: "", field: "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Register(tc.email, tc.password)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewCredentialStore(newTestDB(t), 4)

	id, err := store.Register("a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	user, err := store.Authenticate("a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := NewCredentialStore(newTestDB(t), 4)

	_, err := store.Register("a@x.com", "secret1")
	require.NoError(t, err)

	_, err = store.Register("a@x.com", "another-password")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	store := NewCredentialStore(newTestDB(t), 4)

	_, err := store.Register("a@x.com", "secret1")
	require.NoError(t, err)

	_, wrongPassword := store.Authenticate("a@x.com", "wrong-password")
	_, unknownEmail := store.Authenticate("nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	// Same error value, so the API layer cannot leak which part failed.
	assert.Equal(t, wrongPassword, unknownEmail)
}
