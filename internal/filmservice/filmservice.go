package filmservice

import (
	"context"
	"fmt"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/pkg/helper"
)

// FilmService exposes the film catalog operations and logs each of them.
type FilmService struct {
	FilmRepo interfaces.FilmRepository
	Logger   interfaces.Logger
}

// NewFilmService creates a new FilmService instance.
func NewFilmService(repo interfaces.FilmRepository, logger interfaces.Logger) *FilmService {
	return &FilmService{
		FilmRepo: repo,
		Logger:   logger,
	}
}

// ListFilms returns the films selected by query. Invalid order or limit values
// come back as filmrepo.ErrInvalidOrder or filmrepo.ErrInvalidLimit.
func (s *FilmService) ListFilms(ctx context.Context, query models.FilmQuery) ([]models.Film, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", query.User, "limit", query.Limit, "order_by", query.OrderBy)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	films, err := s.FilmRepo.ListFilms(ctx, query)
	if err != nil {
		s.Logger.Error(ErrListingFilms, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingFilms, err)
	}
	s.Logger.Debug("Films listed", "func", funcName, "count", len(films))
	return films, nil
}

// GetFilm returns the film with that id, or nil if there is none.
func (s *FilmService) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "id", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "id", id)

	film, err := s.FilmRepo.GetFilm(ctx, id)
	if err != nil {
		s.Logger.Error(ErrRetrievingFilm, "func", funcName, "id", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingFilm, err)
	}
	return film, nil
}

// CreateFilm stores film and returns it with its new id.
func (s *FilmService) CreateFilm(ctx context.Context, film models.Film) (*models.Film, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", film.Title, "user", film.User)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	created, err := s.FilmRepo.CreateFilm(ctx, film)
	if err != nil {
		s.Logger.Error(ErrCreatingFilm, "func", funcName, "title", film.Title, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrCreatingFilm, err)
	}
	s.Logger.Info("Film created", "func", funcName, "id", created.ID, "title", created.Title, "user", created.User)
	return created, nil
}

// UpdateFilm merges patch into the film with that id. Returns nil if there is no such film.
func (s *FilmService) UpdateFilm(ctx context.Context, id int64, patch models.FilmPatch) (*models.Film, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "id", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "id", id)

	film, err := s.FilmRepo.UpdateFilm(ctx, id, patch)
	if err != nil {
		s.Logger.Error(ErrUpdatingFilm, "func", funcName, "id", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrUpdatingFilm, err)
	}
	if film == nil {
		s.Logger.Warn(ErrFilmNotFound, "func", funcName, "id", id)
		return nil, nil
	}
	s.Logger.Info("Film updated", "func", funcName, "id", id)
	return film, nil
}

// DeleteFilm removes the film with that id and reports whether it existed.
func (s *FilmService) DeleteFilm(ctx context.Context, id int64) (bool, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "id", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "id", id)

	deleted, err := s.FilmRepo.DeleteFilm(ctx, id)
	if err != nil {
		s.Logger.Error(ErrDeletingFilm, "func", funcName, "id", id, "error", err)
		return false, fmt.Errorf("%s: %w", ErrDeletingFilm, err)
	}
	if !deleted {
		s.Logger.Warn(ErrFilmNotFound, "func", funcName, "id", id)
		return false, nil
	}
	s.Logger.Info("Film deleted", "func", funcName, "id", id)
	return true, nil
}
