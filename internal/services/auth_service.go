package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"quorumhub/internal/models"
	"quorumhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on any login failure. Unknown user
// and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned when a request carries no valid,
// unexpired session.
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthService handles credential verification and session lifecycle.
// Sessions live server-side in the session table; the cookie value is
// a signed token naming the session row, so deleting the row revokes
// the login no matter what the client kept.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
	}
}

// Login verifies the credentials, establishes a session and returns the
// user together with the signed session token. Failed logins leave the
// stored credential untouched.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, "", fmt.Errorf("failed to establish session: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":      session.ID,
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      session.ExpiresAt.Unix(),
		"iat":      now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return user, tokenString, nil
}

// CurrentUser resolves the session token to its user. It fails with
// ErrUnauthenticated on a missing, malformed, revoked or expired
// session.
func (s *AuthService) CurrentUser(tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByID(sid)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if time.Now().After(session.ExpiresAt) {
		if delErr := s.sessionRepo.Delete(session.ID); delErr != nil {
			log.Printf("failed to prune expired session %s: %v", session.ID, delErr)
		}
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Logout destroys the session named by the token. Logging out with a
// stale or malformed token succeeds; only a storage failure surfaces.
func (s *AuthService) Logout(tokenString string) error {
	if tokenString == "" {
		return nil
	}
	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(sid); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// validateToken parses and verifies a session token, returning its
// claims when valid.
func (s *AuthService) validateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
