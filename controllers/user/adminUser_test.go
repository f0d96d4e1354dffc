package userControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: hashed, Role: role, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestAdminListUsersRequiresAdmin(t *testing.T) {
	app := setupTest(t)

	_, studentToken := createUser(t, "Student", "student@example.com", "STUDENT")

	resp, env := doRequest(t, app, http.MethodGet, "/admin/users/list", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestAdminListUsersNeverLeaksPasswords(t *testing.T) {
	app := setupTest(t)

	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")
	createUser(t, "Student", "student@example.com", "STUDENT")

	resp, env := doRequest(t, app, http.MethodGet, "/admin/users/list", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "Password")
}

func TestAdminCreateUser(t *testing.T) {
	app := setupTest(t)

	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	resp, env := doRequest(t, app, http.MethodPost, "/admin/users/create", adminToken, fiber.Map{
		"name":     "New Instructor",
		"email":    "teach@example.com",
		"password": "password123",
		"role":     "INSTRUCTOR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var saved models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "teach@example.com").First(&saved).Error)
	assert.Equal(t, "INSTRUCTOR", saved.Role)
	assert.NotEqual(t, "password123", saved.Password)
}

func TestAdminCreateUserRejectsDuplicateEmail(t *testing.T) {
	app := setupTest(t)

	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")
	createUser(t, "Student", "student@example.com", "STUDENT")

	resp, _ := doRequest(t, app, http.MethodPost, "/admin/users/create", adminToken, fiber.Map{
		"name":     "Dup",
		"email":    "student@example.com",
		"password": "password123",
		"role":     "STUDENT",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteLastAdminRejected(t *testing.T) {
	app := setupTest(t)

	admin, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	resp, env := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)

	var count int64
	database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "ADMIN", false).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteAdminAllowedWhenAnotherExists(t *testing.T) {
	app := setupTest(t)

	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")
	other, _ := createUser(t, "Second Admin", "admin2@example.com", "ADMIN")

	resp, env := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/users/%d", other.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestDemoteLastAdminRejected(t *testing.T) {
	app := setupTest(t)

	admin, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	resp, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, fiber.Map{
		"role": "STUDENT",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Deactivation counts as removal too
	active := false
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, fiber.Map{
		"is_active": active,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserSettingsUpsert(t *testing.T) {
	app := setupTest(t)

	_, token := createUser(t, "Student", "student@example.com", "STUDENT")

	resp, _ := doRequest(t, app, http.MethodPut, "/user/settings/", token, fiber.Map{
		"key":   "theme",
		"value": "dark",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same key again updates in place
	resp, _ = doRequest(t, app, http.MethodPut, "/user/settings/", token, fiber.Map{
		"key":   "theme",
		"value": "light",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.UserSetting{}).Where("key = ?", "theme").Count(&count)
	assert.Equal(t, int64(1), count)

	var setting models.UserSetting
	require.NoError(t, database.Database.Db.Where("key = ?", "theme").First(&setting).Error)
	assert.Equal(t, "light", setting.Value)
}
