package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("unable to authenticate with provided credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

var validate = validator.New()

// AuthService handles user accounts and credential checks.
type AuthService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Gender   models.Gender
}

// Signup creates a new regular user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	return s.createUser(input, false)
}

// CreateSuperuser creates a user with staff and superuser flags set.
func (s *AuthService) CreateSuperuser(email, password string) (*models.User, error) {
	return s.createUser(SignupInput{Email: email, Password: password}, true)
}

func (s *AuthService) createUser(input SignupInput, superuser bool) (*models.User, error) {
	fields := map[string]string{}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		fields["email"] = err.Error()
	}
	if len(input.Password) < constants.MinPasswordLength {
		fields["password"] = fmt.Sprintf("Ensure this field has at least %d characters.", constants.MinPasswordLength)
	}
	name := strings.TrimSpace(input.Name)
	if len(name) > constants.MaxNameLength {
		fields["name"] = fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxNameLength)
	}
	gender := input.Gender
	if gender == "" {
		gender = models.GenderOther
	}
	if !gender.Valid() {
		fields["gender"] = fmt.Sprintf("%q is not a valid choice.", gender)
	}
	if len(fields) > 0 {
		return nil, &apierrors.ValidationError{Fields: fields}
	}

	if err := s.ensureEmailAvailable(email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		Gender:       gender,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTakenError()
		}
		logger.Log.Error("create_user_failed", zap.Error(err))
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the authenticated user.
// Inactive users and users without a usable password cannot log in.
func (s *AuthService) Authenticate(input LoginInput) (*models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive || !user.HasUsablePassword() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.touchLastLogin(user)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the profile fields a user may change. Nil
// fields are left untouched.
type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Gender   *models.Gender
	Password *string
}

// UpdateProfile updates the caller's own profile.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyProfile(user, input.Email, input.Name, input.Gender); err != nil {
		return nil, err
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, apierrors.NewValidationError("password",
				fmt.Sprintf("Ensure this field has at least %d characters.", constants.MinPasswordLength))
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	return s.save(user)
}

// SetProfilePicture stores the URL of the uploaded profile picture.
func (s *AuthService) SetProfilePicture(userID uint64, url string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = url
	return s.save(user)
}

// ListUsers lists every user. Callers must be staff.
func (s *AuthService) ListUsers(pagination *utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// AdminUpdateInput holds the fields staff may change on any user.
type AdminUpdateInput struct {
	Email       *string
	Name        *string
	Gender      *models.Gender
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// AdminUpdateUser updates another user's profile and flags.
func (s *AuthService) AdminUpdateUser(id uint64, input AdminUpdateInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.applyProfile(user, input.Email, input.Name, input.Gender); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}

	return s.save(user)
}

// DeleteUser removes a user and every row owned by the user.
func (s *AuthService) DeleteUser(id uint64) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *AuthService) applyProfile(user *models.User, email, name *string, gender *models.Gender) error {
	if email != nil {
		normalized, err := normalizeEmail(*email)
		if err != nil {
			return apierrors.NewValidationError("email", err.Error())
		}
		if normalized != user.Email {
			if err := s.ensureEmailAvailable(normalized, user.ID); err != nil {
				return err
			}
		}
		user.Email = normalized
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if len(trimmed) > constants.MaxNameLength {
			return apierrors.NewValidationError("name",
				fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxNameLength))
		}
		user.Name = trimmed
	}
	if gender != nil {
		if !gender.Valid() {
			return apierrors.NewValidationError("gender", fmt.Sprintf("%q is not a valid choice.", *gender))
		}
		user.Gender = *gender
	}
	return nil
}

func (s *AuthService) save(user *models.User) (*models.User, error) {
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) ensureEmailAvailable(email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.ID != selfID {
			return emailTakenError()
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *AuthService) touchLastLogin(user *models.User) {
	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Log.Warn("update_last_login_failed", zap.Uint64("user_id", user.ID), zap.Error(err))
		return
	}
	user.LastLogin = &now
}

func emailTakenError() error {
	return apierrors.NewValidationError("email", "user with this email already exists.")
}

// normalizeEmail validates an address and lower-cases its domain part.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("This field is required.")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", errors.New("Enter a valid email address.")
	}

	at := strings.LastIndex(email, "@")
	return email[:at] + "@" + strings.ToLower(email[at+1:]), nil
}
