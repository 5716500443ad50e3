package services

import (
	"errors"
	"testing"
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users    map[string]models.User
	byID     map[uint]models.User
	profiles map[uint]models.UserProfile
	nextID   uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]models.User),
		byID:     make(map[uint]models.User),
		profiles: make(map[uint]models.UserProfile),
		nextID:   1,
	}
}

func (repo *fakeUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := repo.users[email]
	return ok, nil
}

func (repo *fakeUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := repo.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *fakeUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := repo.byID[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *fakeUserRepo) CreateWithDefaults(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.Email] = *user
	repo.byID[user.ID] = *user
	repo.profiles[user.ID] = models.UserProfile{
		UserID:              user.ID,
		AverageCycleLength:  models.DefaultCycleLength,
		AveragePeriodLength: models.DefaultPeriodLength,
	}
	return nil
}

func (repo *fakeUserRepo) UpdateByID(userID uint, updates map[string]any) error {
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(userID uint, passwordHash string) error {
	user := repo.byID[userID]
	user.PasswordHash = passwordHash
	repo.byID[userID] = user
	repo.users[user.Email] = user
	return nil
}

func (repo *fakeUserRepo) FindProfile(userID uint) (models.UserProfile, error) {
	return repo.profiles[userID], nil
}

func (repo *fakeUserRepo) SaveProfile(profile *models.UserProfile) error {
	repo.profiles[profile.UserID] = *profile
	return nil
}

type fakeTokenStore struct {
	tokens map[string]models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]models.RefreshToken)}
}

func (store *fakeTokenStore) Create(token *models.RefreshToken) error {
	store.tokens[token.JTI] = *token
	return nil
}

func (store *fakeTokenStore) FindByJTI(jti string) (models.RefreshToken, error) {
	token, ok := store.tokens[jti]
	if !ok {
		return models.RefreshToken{}, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (store *fakeTokenStore) Revoke(jti string) error {
	token := store.tokens[jti]
	token.Revoked = true
	store.tokens[jti] = token
	return nil
}

func newAuthServiceForTest() (*AuthService, *fakeUserRepo, *fakeTokenStore) {
	users := newFakeUserRepo()
	tokens := newFakeTokenStore()
	return NewAuthService(users, tokens), users, tokens
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	t.Parallel()

	service, users, _ := newAuthServiceForTest()
	user, err := service.Register(RegisterInput{Email: " Ada@Example.com ", Password: "Sunrise42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "Sunrise42" || user.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sunrise42")) != nil {
		t.Fatal("expected hash to verify against the original password")
	}
	if user.Timezone != "UTC" {
		t.Fatalf("expected UTC default timezone, got %q", user.Timezone)
	}
	if _, ok := users.users["ada@example.com"]; !ok {
		t.Fatal("expected user to be persisted under the normalized email")
	}
}

func TestRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	t.Parallel()

	service, _, _ := newAuthServiceForTest()
	if _, err := service.Register(RegisterInput{Email: "ada@example.com", Password: "Sunrise42"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Register(RegisterInput{Email: "ADA@example.com", Password: "Sunrise42"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := service.Register(RegisterInput{Email: "eve@example.com", Password: "weak"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register(RegisterInput{Email: "not-an-email", Password: "Sunrise42"}); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	service, users, _ := newAuthServiceForTest()
	registered, err := service.Register(RegisterInput{Email: "ada@example.com", Password: "Sunrise42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := service.Authenticate(" ADA@example.com ", "Sunrise42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := service.Authenticate("ada@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("ghost@example.com", "Sunrise42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	disabled := users.users["ada@example.com"]
	disabled.IsActive = false
	users.users["ada@example.com"] = disabled
	if _, err := service.Authenticate("ada@example.com", "Sunrise42"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestRotateRefreshTokenIsSingleUse(t *testing.T) {
	t.Parallel()

	service, _, _ := newAuthServiceForTest()
	user, err := service.Register(RegisterInput{Email: "ada@example.com", Password: "Sunrise42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	if err := service.TrackRefreshToken(user.ID, "jti-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotated, err := service.RotateRefreshToken("jti-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, rotated.ID)
	}

	if _, err := service.RotateRefreshToken("jti-1", now); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on reuse, got %v", err)
	}
	if _, err := service.RotateRefreshToken("unknown", now); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked for unknown jti, got %v", err)
	}

	if err := service.TrackRefreshToken(user.ID, "jti-2", now.Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.RotateRefreshToken("jti-2", now); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked for expired token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	service, _, _ := newAuthServiceForTest()
	user, err := service.Register(RegisterInput{Email: "ada@example.com", Password: "Sunrise42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.ChangePassword(user.ID, "wrong", "Moonset77"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "Sunrise42", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "Sunrise42", "Moonset77"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Authenticate("ada@example.com", "Moonset77"); err != nil {
		t.Fatalf("expected login with the new password, got %v", err)
	}
}
