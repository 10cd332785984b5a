package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"jobtorget-backend/middleware"
	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthApp(t *testing.T, db *gorm.DB) (*fiber.App, *AuthService) {
	t.Helper()
	cfg := newTestConfig()
	svc := NewAuthService(db, cfg)

	app := fiber.New()
	app.Post("/auth/register", svc.Register)
	app.Post("/auth/login", svc.Login)
	app.Post("/auth/approve/:id", svc.Approve)
	app.Get("/whoami", middleware.Authenticate([]byte(cfg.JWTSecret)), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id"), "role": c.Locals("role")})
	})
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegisterLoginApproveFlow(t *testing.T) {
	db := newTestDB(t)
	app, _ := newAuthApp(t, db)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
		"role":     models.RoleParticipant,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "anna@example.com").Error)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.NotEqual(t, "hemligt123", user.PasswordHash)

	// Pending accounts cannot log in yet
	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, app, "/auth/approve/"+strconv.Itoa(int(user.ID)), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	// The issued token passes the auth middleware
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	whoami, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, whoami.StatusCode)

	var claims struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(whoami.Body).Decode(&claims))
	assert.Equal(t, models.RoleParticipant, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	app, _ := newAuthApp(t, db)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
		"role":     models.RoleParticipant,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "anna@example.com").Error)
	require.NoError(t, db.Model(&user).Update("status", models.UserStatusActive).Error)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "fel-lösenord",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "hemligt123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsDuplicatesAndShortPasswords(t *testing.T) {
	db := newTestDB(t)
	app, _ := newAuthApp(t, db)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "kort",
		"role":     models.RoleParticipant,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
		"role":     models.RoleParticipant,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "hemligt123",
		"role":     models.RoleCoach,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
