package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/middleware"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	socialService *services.SocialLoginService
	tokenService  *services.TokenService
	imageService  *services.ImageService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *services.AuthService,
	socialService *services.SocialLoginService,
	tokenService *services.TokenService,
	imageService *services.ImageService,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		socialService: socialService,
		tokenService:  tokenService,
		imageService:  imageService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email    string        `json:"email"`
		Password string        `json:"password"`
		Name     string        `json:"name"`
		Gender   models.Gender `json:"gender"`
	}

	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Gender:   req.Gender,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Token exchanges email and password for an auth token and initializes
// the session.
func (h *AuthHandler) Token(c *gin.Context) {
	type TokenRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Authenticate(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.issueToken(c, user)
}

// GoogleToken signs in with a Google authorization code or access token.
func (h *AuthHandler) GoogleToken(c *gin.Context) {
	type GoogleTokenRequest struct {
		Code        string `json:"code"`
		AccessToken string `json:"access_token"`
	}

	var req GoogleTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.socialService.Login(c.Request.Context(), req.Code, req.AccessToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.issueToken(c, user)
}

func (h *AuthHandler) issueToken(c *gin.Context, user *models.User) {
	token, err := h.tokenService.Issue(user)
	if err != nil {
		logger.Log.Error("issue_token_failed", zap.Error(err))
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	logger.Log.Info("user_logged_in", zap.Uint64("user_id", user.ID))
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout removes the authentication session and revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.GetClaims(c); ok {
		if err := h.tokenService.Revoke(c.Request.Context(), claims); err != nil {
			logger.Log.Error("revoke_token_failed", zap.Error(err))
			apierrors.InternalError(c, "Failed to logout")
			return
		}
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateCurrentUser updates the caller's profile. PUT requires email and
// password; PATCH changes only the given fields.
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateMeRequest struct {
		Email    *string        `json:"email"`
		Password *string        `json:"password"`
		Name     *string        `json:"name"`
		Gender   *models.Gender `json:"gender"`
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{
		"email":    req.Email != nil,
		"password": req.Password != nil,
	}) {
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Email:    req.Email,
		Name:     req.Name,
		Gender:   req.Gender,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UploadProfilePicture stores the multipart "image" file as the caller's
// profile picture.
func (h *AuthHandler) UploadProfilePicture(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	url, err := h.imageService.Upload(c.Request.Context(), constants.ProfilePicturePrefix, file)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	user, err := h.authService.SetProfilePicture(userID, url)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	if verr, ok := apierrors.AsValidationError(err); ok {
		apierrors.Validation(c, verr)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSocialLoginFailed):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrSocialCredentialsMissing),
		errors.Is(err, services.ErrSocialEmailMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSocialLoginNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser),
		errors.Is(err, services.ErrImageStoreFailed):
		apierrors.InternalError(c, err.Error())
	default:
		logger.Log.Error("auth_request_failed", zap.Error(err))
		apierrors.InternalError(c, "Internal server error")
	}
}
