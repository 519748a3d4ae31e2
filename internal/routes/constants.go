package routes

const (
	// API route constants
	MetricsRouteAPI = "/metrics"
	LoginRouteAPI   = "/login"
	SignupRouteAPI  = "/signup"
	MeRouteAPI      = "/me"
	FilmsRouteAPI   = "/films"
	FilmRouteAPI    = "/films/{id}"

	// URL and query parameters
	ParamID      = "id"
	QueryUser    = "user"
	QueryLimit   = "limit"
	QueryOrderBy = "order_by"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// message constants
	MsgLoginSuccessful   = "Login successful"
	MsgUserCreatedFormat = "User created successfully with ID: %s"

	// Error messages
	ErrInvalidContentType       = "content-Type must be application/json"
	ErrInvalidRequestBody       = "invalid request body"
	ErrValidationFailed         = "data validation failed"
	ErrFailedToRegisterUser     = "failed to register user"
	ErrUsernameTaken            = "username is already taken"
	ErrFailedToEncodeResponse   = "failed to encode response"
	ErrFailedToGenerateToken    = "failed to generate session token"
	ErrInvalidCredentials       = "invalid username or password"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrInternal                 = "internal server error"
	ErrUserNotFound             = "user not found"
	ErrSessionUserMissing       = "session user no longer exists"
	ErrFilmNotFound             = "film not found"
	ErrInvalidFilmID            = "film id must be a positive integer"
	ErrInvalidLimitParam        = "limit must be an integer"
	ErrInvalidLimitRange        = "limit must be between 0 and the configured maximum"
	ErrInvalidOrderParam        = "order_by must be id, title, year, director or genre, optionally followed by ASC or DESC"
	ErrTitleRequired            = "film title is required"
	ErrInvalidUsername          = "username must be 1 to 64 characters"
	ErrInvalidListQuery         = "invalid film list query"
	ErrFailedToListFilms        = "failed to list films"
	ErrFailedToGetFilm          = "failed to get film"
	ErrFailedToCreateFilm       = "failed to create film"
	ErrFailedToUpdateFilm       = "failed to update film"
	ErrFailedToDeleteFilm       = "failed to delete film"
)
