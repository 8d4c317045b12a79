package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

// AuthService drives the hosted auth flow and keeps the in-memory session
// in step with it. Access tokens are HS256-signed by the auth service; the
// shared secret verifies them locally without a round trip.
type AuthService struct {
	auth      gateway.AuthGateway
	state     *store.State
	jwtSecret string
}

func NewAuthService(gw *gateway.Gateway, state *store.State, jwtSecret string) *AuthService {
	return &AuthService{auth: gw.Auth, state: state, jwtSecret: jwtSecret}
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if s.auth == nil {
		return nil, errors.New("auth service is not configured")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		logger.Warn("Sign-in rejected", map[string]interface{}{"email": email})
		return nil, ErrInvalidCredentials
	}

	s.state.SetSession(session)
	logger.Info("User signed in", map[string]interface{}{"user": session.User.Email})
	return session, nil
}

// Session returns the active session, refreshing it first when it is about
// to expire.
func (s *AuthService) Session(ctx context.Context) (*models.Session, error) {
	session := s.state.Session()
	if session == nil {
		return nil, ErrNoSession
	}

	if time.Until(session.ExpiresAt) > time.Minute {
		return session, nil
	}
	if session.RefreshToken == "" {
		return nil, ErrNoSession
	}

	refreshed, err := s.auth.Refresh(ctx, session.RefreshToken)
	if err != nil {
		s.state.ResetOnSignOut()
		return nil, fmt.Errorf("session refresh failed: %w", err)
	}

	s.state.SetSession(refreshed)
	return refreshed, nil
}

// SignOut revokes the session remotely and drops the local one. Loaded
// public content stays in the page state.
func (s *AuthService) SignOut(ctx context.Context) error {
	session := s.state.Session()
	if session == nil {
		return nil
	}

	if err := s.auth.SignOut(ctx, session.AccessToken); err != nil {
		logger.Error(err, "Remote sign-out failed, clearing local session anyway", nil)
	}
	s.state.ResetOnSignOut()
	return nil
}

// VerifyToken checks an access token's signature and expiry and returns
// its claims.
func (s *AuthService) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
