package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/PDPSchoolTeam/Metsenat-API/configs"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/catalog"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/handlers"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/ledger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/logger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/routes"
	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Init()
	configs.AppConfig.JWT.SECRET = "test-secret"
	configs.AppConfig.JWT.AccessTTLHours = 1
	configs.AppConfig.JWT.RefreshTTLHours = 24
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.University{},
		&models.Student{},
		&models.Sponsor{},
		&models.Allocation{},
	))
	h := handlers.New(ledger.NewEngine(db), catalog.NewStore(db))
	return routes.NewRoutes(h), db
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAdmin(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":            "admin@metsenat.local",
		"username":         "admin",
		"password":         "password123",
		"confirm_password": "password123",
		"role":             "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens handlers.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)
	return tokens.Access
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "admin@metsenat.local",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens handlers.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))

	rec = doJSON(t, router, http.MethodGet, "/auth/me", tokens.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me handlers.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "admin", me.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "admin@metsenat.local",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginStorageErrorIsServerError(t *testing.T) {
	router, db := newTestRouter(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "admin@metsenat.local",
		"password": "password123",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":            "admin@metsenat.local",
		"username":         "admin2",
		"password":         "password123",
		"confirm_password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/sponsors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/sponsors", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSponsorApplicationIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/sponsors", "", map[string]any{
		"full_name":        "Aziz Karimov",
		"phone_number":     "+998901234567",
		"is_organization":  false,
		"amount_selection": "1_000_000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sponsor handlers.SponsorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sponsor))
	assert.Equal(t, "1000000", sponsor.DepositMoney.String())
	assert.Nil(t, sponsor.CustomAmount)
	assert.Equal(t, "individual", sponsor.SponsorKind)
	assert.Equal(t, "new", sponsor.Progress)
}

func TestSponsorValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("individual with organization name", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/sponsors", "", map[string]any{
			"full_name":         "Aziz Karimov",
			"phone_number":      "+998901234567",
			"is_organization":   false,
			"organization_name": "Acme",
			"amount_selection":  "1_000_000",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "organization_name")
	})

	t.Run("custom selection without amount", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/sponsors", "", map[string]any{
			"full_name":        "Aziz Karimov",
			"phone_number":     "+998901234568",
			"amount_selection": "custom",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "custom_amount")
	})
}

func TestAllocationFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/universities", token, map[string]any{
		"name": "Tashkent State University",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var university handlers.UniversityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &university))

	rec = doJSON(t, router, http.MethodPost, "/sponsors", "", map[string]any{
		"full_name":        "Aziz Karimov",
		"phone_number":     "+998901234567",
		"amount_selection": "10_000_000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sponsor handlers.SponsorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sponsor))

	rec = doJSON(t, router, http.MethodPost, "/students", token, map[string]any{
		"full_name":      "Malika Yusupova",
		"degree":         "bachelor",
		"contract_price": 8_000_000,
		"university_id":  university.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var student handlers.StudentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))

	rec = doJSON(t, router, http.MethodPost, "/allocations", token, map[string]any{
		"student_id": student.ID,
		"sponsor_id": sponsor.ID,
		"amount":     3_000_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/students/%d", student.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	assert.Equal(t, "3000000", student.AllocatedMoney.String())

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/sponsors/%d", sponsor.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sponsor))
	assert.Equal(t, "3000000", sponsor.SpentAmount.String())

	// Exceeding the remaining balance is rejected.
	rec = doJSON(t, router, http.MethodPost, "/allocations", token, map[string]any{
		"student_id": student.ID,
		"sponsor_id": sponsor.ID,
		"amount":     8_000_000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/payments/total", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals handlers.TotalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, "10000000", totals.TotalPaid.String())
	assert.Equal(t, "8000000", totals.TotalRequested.String())
	assert.Equal(t, "-2000000", totals.TotalNeeded.String())
}

func TestAllocationUnknownSponsor(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/allocations", token, map[string]any{
		"student_id": 1,
		"sponsor_id": 99,
		"amount":     100,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
