package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"giftcatalog/internal/models"
	"giftcatalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles curator registration, login and token checks.
type AuthService struct {
	curatorRepo repositories.CuratorRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for 24 hours.
func NewAuthService(curatorRepo repositories.CuratorRepository, jwtSecret string) *AuthService {
	return &AuthService{
		curatorRepo: curatorRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    24 * time.Hour,
	}
}

// RegisterCurator hashes the password and stores a new curator account.
func (s *AuthService) RegisterCurator(curator *models.Curator) error {
	if err := models.ValidateStruct(curator); err != nil {
		return err
	}
	if existing, err := s.curatorRepo.GetByUsername(curator.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: username '%s' already taken", models.ErrConflict, curator.Username)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing, err := s.curatorRepo.GetByEmail(curator.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: email '%s' already registered", models.ErrConflict, curator.Email)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(curator.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	curator.Password = string(hashedPassword)

	if err := s.curatorRepo.Create(curator); err != nil {
		return fmt.Errorf("failed to register curator: %w", err)
	}
	log.Printf("Registered curator %s with ID: %s", curator.Username, curator.ID)
	return nil
}

// LoginCurator checks the credentials and returns a signed JWT.
func (s *AuthService) LoginCurator(username, password string) (string, error) {
	curator, err := s.curatorRepo.GetByUsername(username)
	if err != nil {
		return "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(curator.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"curator_id": curator.ID,
		"username":   curator.Username,
		"exp":        now.Add(s.tokenTTL).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
