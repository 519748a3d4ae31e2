package interfaces

import (
	"context"

	"github.com/haguru/filmdb/internal/models"
)

// FilmRepository defines the contract for the film catalog.
// GetFilm and UpdateFilm return (nil, nil) and DeleteFilm returns false when the id is unknown.
type FilmRepository interface {
	ListFilms(ctx context.Context, query models.FilmQuery) ([]models.Film, error)
	GetFilm(ctx context.Context, id int64) (*models.Film, error)
	CreateFilm(ctx context.Context, film models.Film) (*models.Film, error)
	UpdateFilm(ctx context.Context, id int64, patch models.FilmPatch) (*models.Film, error)
	DeleteFilm(ctx context.Context, id int64) (bool, error)
	EnsureIndices(ctx context.Context) error
}
