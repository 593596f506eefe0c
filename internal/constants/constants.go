package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyTokenID = "token_id"
	SessionCookieName = "diet_session"
)

// Validation limits
const (
	MinPasswordLength = 5
	MaxNameLength     = 255
	MaxSmallInt       = 32767
	DefaultServing    = 100
	DefaultAmount     = 1
	MaxImageSize      = 5 << 20
	MaxUploadBody     = MaxImageSize + 1<<20
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Upload prefixes for stored images
const (
	ProfilePicturePrefix     = "uploads/profile_picture/"
	FoodPicturePrefix        = "uploads/food_picture/"
	MeasurementPicturePrefix = "uploads/measurement_picture/"
)

// Social providers
const (
	ProviderGoogle = "google"
)
