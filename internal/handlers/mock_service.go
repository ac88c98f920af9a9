package handlers

import (
	"context"

	"auth_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	signInToken string
	signInErr   error
	verifyRes   service.TokenClaims
	verifyErr   error

	lastRegisterUsername string
	lastRegisterRole     string
	lastSignInUsername   string
	lastVerifyToken      string
}

func (m *mockAuth) Register(_ context.Context, username, _, role string) error {
	m.lastRegisterUsername = username
	m.lastRegisterRole = role
	return m.registerErr
}

func (m *mockAuth) SignIn(_ context.Context, username, _ string) (string, error) {
	m.lastSignInUsername = username
	return m.signInToken, m.signInErr
}

func (m *mockAuth) VerifyToken(raw string) (service.TokenClaims, error) {
	m.lastVerifyToken = raw
	return m.verifyRes, m.verifyErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func claimsFor(username, role string) service.TokenClaims {
	return service.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: username},
		Role:             role,
	}
}
