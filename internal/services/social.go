package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrSocialLoginNotConfigured = errors.New("social login is not configured")
	ErrSocialCredentialsMissing = errors.New("either code or access_token is required")
	ErrSocialLoginFailed        = errors.New("failed to verify identity with provider")
	ErrSocialEmailMissing       = errors.New("provider did not return an email address")
)

const msgEmailRegistered = "User is already registered with this e-mail address."

// SocialProfile is the identity returned by a provider.
type SocialProfile struct {
	UID           string
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
}

// SocialProvider verifies an authorization code or access token with an
// identity provider.
type SocialProvider interface {
	Name() string
	FetchProfile(ctx context.Context, code, accessToken string) (*SocialProfile, error)
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleProvider implements SocialProvider with Google OAuth2.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider creates a GoogleProvider.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *GoogleProvider) Name() string {
	return constants.ProviderGoogle
}

// FetchProfile exchanges the code (or uses the access token directly) and
// reads the user info endpoint.
func (p *GoogleProvider) FetchProfile(ctx context.Context, code, accessToken string) (*SocialProfile, error) {
	var token *oauth2.Token
	switch {
	case accessToken != "":
		token = &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	case code != "":
		exchanged, err := p.config.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("code exchange failed: %w", err)
		}
		token = exchanged
	default:
		return nil, ErrSocialCredentialsMissing
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		GivenName     string `json:"given_name"`
		FamilyName    string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	return &SocialProfile{
		UID:           info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		FirstName:     info.GivenName,
		LastName:      info.FamilyName,
	}, nil
}

// SocialLoginService signs users in through an external provider.
type SocialLoginService struct {
	userRepo repository.UserRepository
	provider SocialProvider
	auth     *AuthService
}

// NewSocialLoginService creates a SocialLoginService. provider may be nil
// when social login is disabled.
func NewSocialLoginService(userRepo repository.UserRepository, provider SocialProvider, auth *AuthService) *SocialLoginService {
	return &SocialLoginService{
		userRepo: userRepo,
		provider: provider,
		auth:     auth,
	}
}

// Login resolves the provider identity to a local user, creating one on
// first login. The name of a new user is built from the provider's first
// and last name.
func (s *SocialLoginService) Login(ctx context.Context, code, accessToken string) (*models.User, error) {
	if s.provider == nil {
		return nil, ErrSocialLoginNotConfigured
	}
	if code == "" && accessToken == "" {
		return nil, ErrSocialCredentialsMissing
	}

	profile, err := s.provider.FetchProfile(ctx, code, accessToken)
	if err != nil {
		logger.Log.Warn("social_login_failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, ErrSocialLoginFailed
	}
	if profile.UID == "" {
		return nil, ErrSocialLoginFailed
	}

	account, err := s.userRepo.FindSocialAccount(s.provider.Name(), profile.UID)
	if err == nil {
		return s.activeUser(account.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find social account: %w", err)
	}

	if profile.Email == "" {
		return nil, ErrSocialEmailMissing
	}
	email, err := normalizeEmail(profile.Email)
	if err != nil {
		return nil, ErrSocialEmailMissing
	}

	link := &models.SocialAccount{Provider: s.provider.Name(), UID: profile.UID}

	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		// Only a provider verified address may claim an existing account.
		if !profile.EmailVerified {
			return nil, apierrors.NewValidationError("email", msgEmailRegistered)
		}
		link.UserID = existing.ID
		if err := s.userRepo.CreateSocialAccount(link); err != nil {
			return nil, fmt.Errorf("failed to link social account: %w", err)
		}
		return s.activeUser(existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(profile.FirstName + " " + profile.LastName),
		Gender:   models.GenderOther,
		IsActive: true,
	}
	if err := s.userRepo.CreateWithSocialAccount(user, link); err != nil {
		logger.Log.Error("social_signup_failed", zap.Error(err))
		return nil, ErrFailedToCreateUser
	}

	s.auth.touchLastLogin(user)
	return user, nil
}

func (s *SocialLoginService) activeUser(id uint64) (*models.User, error) {
	user, err := s.auth.GetUser(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	s.auth.touchLastLogin(user)
	return user, nil
}
