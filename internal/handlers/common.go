package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/middleware"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"go.uber.org/zap"
)

const headerTotalCount = "X-Total-Count"

// currentActor returns the authenticated caller or answers 401.
func currentActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Actor{}, false
	}
	return actor, true
}

// listInput reads the all flag and optional pagination of a list request.
func listInput(c *gin.Context) (services.ListInput, bool) {
	all, err := utils.ParseAllFlag(c)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid query parameter", map[string]string{"all": err.Error()})
		return services.ListInput{}, false
	}
	return services.ListInput{
		All:        all,
		Pagination: utils.OptionalPagination(c),
	}, true
}

// respondList writes a list body with its total count header.
func respondList(c *gin.Context, total int64, body interface{}) {
	c.Header(headerTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, body)
}

// pathID parses the :id path parameter. Invalid ids match no row.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.InvalidBody(c, err)
		return false
	}
	return true
}

// isFullUpdate reports whether the request replaces the whole resource.
func isFullUpdate(c *gin.Context) bool {
	return c.Request.Method == http.MethodPut
}

// requireFields answers 400 when a create or full update omits a required
// field.
func requireFields(c *gin.Context, full bool, present map[string]bool) bool {
	if !full {
		return true
	}
	fields := map[string]string{}
	for name, ok := range present {
		if !ok {
			fields[name] = "This field is required."
		}
	}
	if len(fields) > 0 {
		apierrors.Validation(c, &apierrors.ValidationError{Fields: fields})
		return false
	}
	return true
}

// formImage reads the multipart "image" file. The body is capped before
// parsing so oversized uploads are rejected without being spooled. A
// missing file yields nil and is reported by the image service.
func formImage(c *gin.Context) (*multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxUploadBody)

	file, err := c.FormFile("image")
	if err == nil {
		return file, true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		apierrors.Validation(c, apierrors.NewValidationError("image",
			fmt.Sprintf("Ensure the file is at most %d bytes.", constants.MaxImageSize)))
		return nil, false
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		apierrors.BadRequest(c, "Invalid multipart body")
		return nil, false
	}
}

var notFoundErrors = []error{
	services.ErrNotFound,
	services.ErrUserNotFound,
	services.ErrMeasurementNotFound,
	services.ErrGoalNotFound,
	services.ErrFoodNotFound,
	services.ErrRecipeNotFound,
	services.ErrFoodAmountNotFound,
	services.ErrMealNotFound,
	services.ErrDailyMealNotFound,
}

// respondServiceError maps errors returned by the resource services.
func respondServiceError(c *gin.Context, err error) {
	if verr, ok := apierrors.AsValidationError(err); ok {
		apierrors.Validation(c, verr)
		return
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			apierrors.NotFound(c, err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrEstimatorUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrImageStoreFailed):
		apierrors.InternalError(c, err.Error())
	default:
		logger.Log.Error("request_failed", zap.String("path", c.FullPath()), zap.Error(err))
		apierrors.InternalError(c, "Internal server error")
	}
}
