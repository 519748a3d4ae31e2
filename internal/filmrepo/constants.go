package filmrepo

import "errors"

const (
	// FilmsTable is the table (or collection) holding the catalog.
	FilmsTable = "films"

	FieldID       = "id"
	FieldTitle    = "title"
	FieldUser     = "user"
	FieldYear     = "year"
	FieldDirector = "director"
	FieldGenre    = "genre"

	// DefaultMaxLimit caps the number of films one listing may ask for.
	DefaultMaxLimit = 1000

	// DefaultOrderBy is used when a listing names no order.
	DefaultOrderBy = "title ASC"

	// Error messages for film repository operations
	ErrFailedToListFilms     = "failed to list films"
	ErrFailedToGetFilm       = "failed to get film"
	ErrFailedToCreateFilm    = "failed to create film"
	ErrFailedToUpdateFilm    = "failed to update film"
	ErrFailedToDeleteFilm    = "failed to delete film"
	ErrFailedToDecodeFilm    = "failed to decode film"
	ErrFailedToEnsureIndices = "failed to ensure films table"
)

var (
	// ErrInvalidOrder is returned for an order_by outside the allowed columns and directions.
	ErrInvalidOrder = errors.New("invalid order_by")
	// ErrInvalidLimit is returned for a negative limit or one above the configured maximum.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrTitleRequired is returned when a film would be stored without a title.
	ErrTitleRequired = errors.New("film title is required")
)
