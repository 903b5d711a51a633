package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"

	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService owns admin sessions and permission checks. The booking and
// payment surfaces only accept callers already holding the relevant
// permission; guests hitting the public endpoints skip it entirely.
type AuthService struct {
	store repositories.Store
}

func NewAuthService(store repositories.Store) *AuthService {
	return &AuthService{store: store}
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *AuthService) Login(username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	admin, err := s.store.Admins().GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := generateTokenHex(32)
	if err != nil {
		return "", nil, err
	}
	authToken := &models.AuthToken{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(tokenTTL),
	}
	if err := s.store.Admins().CreateToken(authToken); err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// Authenticate resolves a bearer token to its admin, rejecting expired
// or unknown tokens.
func (s *AuthService) Authenticate(token string) (*models.Admin, error) {
	authToken, err := s.store.Admins().GetToken(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	admin, err := s.store.Admins().GetByID(authToken.AdminID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) Logout(token string) error {
	return s.store.Admins().DeleteToken(strings.TrimSpace(token))
}

// HasPermission checks the admin's role for the permission string.
func (s *AuthService) HasPermission(adminID uint, permission string) (bool, error) {
	perms, err := s.store.Admins().PermissionsForAdmin(adminID)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}
