package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/services"
)

type stubAuthService struct {
	loginResp *dto.LoginResponse
	loginErr  error
	meResp    *dto.UserResponse
	meErr     error
}

func (s *stubAuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Me(userID uuid.UUID) (*dto.UserResponse, error) {
	return s.meResp, s.meErr
}

func newAuthApp(svc AuthService, userID string) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(svc)
	app.Post("/auth/login", h.Login)
	app.Get("/auth/me", withClaims(userID, "ADMIN"), h.Me)
	return app
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &dto.LoginResponse{
			Token: "jwt-token",
			User:  dto.UserResponse{ID: uuid.New(), Email: "a@b.com", Name: "Ana", Role: "ADMIN"},
		},
	}
	app := newAuthApp(svc, "")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "a@b.com", "password": "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.LoginResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "jwt-token", body.Token)
	assert.Equal(t, "Ana", body.User.Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newAuthApp(&stubAuthService{loginErr: services.ErrInvalidCredentials}, "")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "a@b.com", "password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Error)
	assert.Equal(t, "Invalid credentials", body.Message)
}

func TestMeReturnsProfile(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{meResp: &dto.UserResponse{ID: userID, Name: "Ana", Role: "VIEWER"}}
	app := newAuthApp(svc, userID.String())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User *dto.UserResponse `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotNil(t, body.User)
	assert.Equal(t, "Ana", body.User.Name)
}

func TestMeDeletedAccount(t *testing.T) {
	app := newAuthApp(&stubAuthService{meErr: services.ErrUserNotFound}, uuid.New().String())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User *dto.UserResponse `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.Nil(t, body.User, "a deleted account answers with a null user, not an error")
}
