package routes

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/haguru/filmdb/internal/models/dto"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	FilmService interfaces.FilmService
	PrivateKey  *ecdsa.PrivateKey
	Logger      interfaces.Logger
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService, filmService interfaces.FilmService,
	privateKey *ecdsa.PrivateKey, logger interfaces.Logger, validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:     metrics,
		UserService: userService,
		FilmService: filmService,
		PrivateKey:  privateKey,
		Logger:      logger,
		validator:   validator,
	}
}

// MetricsHandler serves the metrics registry, traced with otelhttp.
func (r *Route) MetricsHandler() http.Handler {
	metricsHandler := promhttp.HandlerFor(r.Metrics.GetRegistry(), promhttp.HandlerOpts{})
	return otelhttp.NewHandler(metricsHandler, MetricsRouteAPI)
}

// decodeJSON checks the content type, then decodes and validates the body into dst.
// On failure the 400 response has already been written.
func (r *Route) decodeJSON(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	if req.Header.Get(ContentType) != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidContentType,
			fmt.Sprintf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)))
		return false
	}

	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidRequestBody, err.Error())
		return false
	}

	if err := r.validator.Struct(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, err.Error())
		return false
	}
	return true
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && r.Logger != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	r.writeJSON(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// internalError logs err and answers 500 without leaking store details.
func (r *Route) internalError(w http.ResponseWriter, message string, err error) {
	if r.Logger != nil {
		r.Logger.Error(message, "error", err)
	}
	r.errorResponse(w, http.StatusInternalServerError, ErrInternal, message)
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) observeSince(name string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(name, time.Since(start).Seconds())
	}
}

func parseFilmID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
