package services

import (
	"errors"
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("refresh token revoked")
	ErrAccountDisabled    = errors.New("account disabled")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	CreateWithDefaults(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string) error
	FindProfile(userID uint) (models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}

type RefreshTokenStore interface {
	Create(token *models.RefreshToken) error
	FindByJTI(jti string) (models.RefreshToken, error)
	Revoke(jti string) error
}

type AuthService struct {
	users  AuthUserRepository
	tokens RefreshTokenStore
}

func NewAuthService(users AuthUserRepository, tokens RefreshTokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Timezone  string
}

func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Timezone:     timezone,
		IsActive:     true,
	}
	if err := service.users.CreateWithDefaults(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// TrackRefreshToken records an issued refresh JTI for later revocation checks.
func (service *AuthService) TrackRefreshToken(userID uint, jti string, expiresAt time.Time) error {
	return service.tokens.Create(&models.RefreshToken{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt,
	})
}

// RotateRefreshToken validates the presented JTI, revokes it, and reports
// the owning user. Rotation makes a stolen refresh token single-use.
func (service *AuthService) RotateRefreshToken(jti string, now time.Time) (models.User, error) {
	token, err := service.tokens.FindByJTI(jti)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrTokenRevoked
		}
		return models.User{}, err
	}
	if token.Revoked || token.ExpiresAt.Before(now) {
		return models.User{}, ErrTokenRevoked
	}
	if err := service.tokens.Revoke(jti); err != nil {
		return models.User{}, err
	}
	user, err := service.users.FindByID(token.UserID)
	if err != nil {
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}
	return user, nil
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	newPassword = trimmed(newPassword)
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, string(hash))
}

func (service *AuthService) UpdateProfile(userID uint, updates map[string]any) error {
	return service.users.UpdateByID(userID, updates)
}

func (service *AuthService) Profile(userID uint) (models.UserProfile, error) {
	return service.users.FindProfile(userID)
}

func (service *AuthService) SaveProfile(profile *models.UserProfile) error {
	return service.users.SaveProfile(profile)
}
