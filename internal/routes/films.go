package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haguru/filmdb/internal/filmrepo"
	"github.com/haguru/filmdb/internal/metrics"
	"github.com/haguru/filmdb/internal/middleware"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/internal/models/dto"
)

// filmOp counts a film request and returns a func that records its outcome.
func (r *Route) filmOp(op string) func(failed bool) {
	start := time.Now()
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(metrics.FilmRequestsTotal, op)
	}
	return func(failed bool) {
		if r.Metrics == nil {
			return
		}
		if failed {
			r.Metrics.IncCounterVec(metrics.FilmErrorsTotal, op)
		}
		r.Metrics.ObserveHistogramVec(metrics.FilmOperationDurationSeconds, time.Since(start).Seconds(), op)
	}
}

// ListFilms handles GET /films?user=&limit=&order_by=.
func (r *Route) ListFilms(w http.ResponseWriter, req *http.Request) {
	done := r.filmOp(metrics.OpList)

	q := req.URL.Query()
	query := models.FilmQuery{
		User:    q.Get(QueryUser),
		OrderBy: q.Get(QueryOrderBy),
	}
	if raw := q.Get(QueryLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			done(true)
			r.errorResponse(w, http.StatusBadRequest, ErrInvalidListQuery, ErrInvalidLimitParam)
			return
		}
		query.Limit = limit
	}

	films, err := r.FilmService.ListFilms(req.Context(), query)
	if err != nil {
		done(true)
		if errors.Is(err, filmrepo.ErrInvalidOrder) {
			r.errorResponse(w, http.StatusBadRequest, ErrInvalidListQuery, ErrInvalidOrderParam)
			return
		}
		if errors.Is(err, filmrepo.ErrInvalidLimit) {
			r.errorResponse(w, http.StatusBadRequest, ErrInvalidListQuery, ErrInvalidLimitRange)
			return
		}
		r.internalError(w, ErrFailedToListFilms, err)
		return
	}
	done(false)

	if films == nil {
		films = []models.Film{}
	}
	r.writeJSON(w, http.StatusOK, &dto.FilmListResponseDTO{Films: films, Count: len(films)})
}

// GetFilm handles GET /films/{id}.
func (r *Route) GetFilm(w http.ResponseWriter, req *http.Request) {
	done := r.filmOp(metrics.OpGet)

	id, ok := parseFilmID(chi.URLParam(req, ParamID))
	if !ok {
		done(true)
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidFilmID, ErrInvalidFilmID)
		return
	}

	film, err := r.FilmService.GetFilm(req.Context(), id)
	if err != nil {
		done(true)
		r.internalError(w, ErrFailedToGetFilm, err)
		return
	}
	done(false)

	if film == nil {
		r.errorResponse(w, http.StatusNotFound, ErrFilmNotFound, ErrFilmNotFound)
		return
	}
	r.writeJSON(w, http.StatusOK, film)
}

// CreateFilm handles POST /films. A film without an owner belongs to the session user.
func (r *Route) CreateFilm(w http.ResponseWriter, req *http.Request) {
	done := r.filmOp(metrics.OpCreate)

	filmRequest := &dto.FilmRequestDTO{}
	if !r.decodeJSON(w, req, filmRequest) {
		done(true)
		return
	}
	film := filmRequest.ToModel()

	if film.User == "" {
		user, err := r.UserService.GetUserByID(req.Context(), middleware.UserIDFromContext(req.Context()))
		if err != nil {
			done(true)
			r.internalError(w, ErrFailedToCreateFilm, err)
			return
		}
		if user == nil {
			done(true)
			r.errorResponse(w, http.StatusUnauthorized, ErrUserNotFound, ErrSessionUserMissing)
			return
		}
		film.User = user.Username
	}

	created, err := r.FilmService.CreateFilm(req.Context(), film)
	if err != nil {
		done(true)
		if errors.Is(err, filmrepo.ErrTitleRequired) {
			r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, ErrTitleRequired)
			return
		}
		r.internalError(w, ErrFailedToCreateFilm, err)
		return
	}
	done(false)

	r.writeJSON(w, http.StatusCreated, created)
}

// UpdateFilm handles PUT /films/{id}. Fields missing from the body are kept.
func (r *Route) UpdateFilm(w http.ResponseWriter, req *http.Request) {
	done := r.filmOp(metrics.OpUpdate)

	id, ok := parseFilmID(chi.URLParam(req, ParamID))
	if !ok {
		done(true)
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidFilmID, ErrInvalidFilmID)
		return
	}

	patchRequest := &dto.FilmPatchDTO{}
	if !r.decodeJSON(w, req, patchRequest) {
		done(true)
		return
	}

	film, err := r.FilmService.UpdateFilm(req.Context(), id, patchRequest.ToModel())
	if err != nil {
		done(true)
		if errors.Is(err, filmrepo.ErrTitleRequired) {
			r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, ErrTitleRequired)
			return
		}
		r.internalError(w, ErrFailedToUpdateFilm, err)
		return
	}
	done(false)

	if film == nil {
		r.errorResponse(w, http.StatusNotFound, ErrFilmNotFound, ErrFilmNotFound)
		return
	}
	r.writeJSON(w, http.StatusOK, film)
}

// DeleteFilm handles DELETE /films/{id}.
func (r *Route) DeleteFilm(w http.ResponseWriter, req *http.Request) {
	done := r.filmOp(metrics.OpDelete)

	id, ok := parseFilmID(chi.URLParam(req, ParamID))
	if !ok {
		done(true)
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidFilmID, ErrInvalidFilmID)
		return
	}

	deleted, err := r.FilmService.DeleteFilm(req.Context(), id)
	if err != nil {
		done(true)
		r.internalError(w, ErrFailedToDeleteFilm, err)
		return
	}
	done(false)

	if !deleted {
		r.errorResponse(w, http.StatusNotFound, ErrFilmNotFound, ErrFilmNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
