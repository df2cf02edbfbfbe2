package catalog

import (
	"context"
	"testing"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.University{}))
	return NewStore(db)
}

func TestCreateUniversity(t *testing.T) {
	s := testStore(t)

	university, err := s.CreateUniversity(context.Background(), "Samarkand State University")
	require.NoError(t, err)
	assert.NotZero(t, university.ID)

	got, err := s.University(context.Background(), university.ID)
	require.NoError(t, err)
	assert.Equal(t, "Samarkand State University", got.Name)

	all, err := s.Universities(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateUniversityRequiresName(t *testing.T) {
	s := testStore(t)

	_, err := s.CreateUniversity(context.Background(), "   ")
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)
}

func TestUniversityNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.University(context.Background(), 42)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateUser(t *testing.T) {
	s := testStore(t)

	user := models.User{
		Email:    "aziz@example.com",
		Username: "aziz",
		Role:     models.RoleSponsor,
		Password: "hashed",
	}
	require.NoError(t, s.CreateUser(context.Background(), &user))
	assert.NotZero(t, user.ID)

	got, err := s.UserByEmail(context.Background(), "aziz@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	byID, err := s.UserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "aziz", byID.Username)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	s := testStore(t)

	err := s.CreateUser(context.Background(), &models.User{
		Email:    "aziz@example.com",
		Username: "aziz",
		Role:     models.Role("superuser"),
	})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "role", validation.Field)
}

func TestCreateUserUniqueness(t *testing.T) {
	s := testStore(t)

	base := models.User{Email: "aziz@example.com", Username: "aziz", Password: "hashed"}
	require.NoError(t, s.CreateUser(context.Background(), &base))

	t.Run("duplicate email", func(t *testing.T) {
		err := s.CreateUser(context.Background(), &models.User{Email: "aziz@example.com", Username: "other"})
		var conflict *apperr.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "email", conflict.Field)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := s.CreateUser(context.Background(), &models.User{Email: "other@example.com", Username: "aziz"})
		var conflict *apperr.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "username", conflict.Field)
	})
}

func TestUserByEmailNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.UserByEmail(context.Background(), "missing@example.com")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Entity)
}
