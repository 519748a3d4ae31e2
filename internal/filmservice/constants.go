package filmservice

const (
	// Error messages for film service operations
	ErrListingFilms   = "error listing films"
	ErrRetrievingFilm = "error retrieving film"
	ErrCreatingFilm   = "error creating film"
	ErrUpdatingFilm   = "error updating film"
	ErrDeletingFilm   = "error deleting film"
	ErrFilmNotFound   = "film not found"
)
