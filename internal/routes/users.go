package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/filmdb/internal/auth"
	"github.com/haguru/filmdb/internal/metrics"
	"github.com/haguru/filmdb/internal/middleware"
	"github.com/haguru/filmdb/internal/models/dto"
	"github.com/haguru/filmdb/internal/userrepo"
)

// Signup handles user signup requests.
func (r *Route) Signup(w http.ResponseWriter, req *http.Request) {
	r.incCounter(metrics.SignupRequestsTotal)

	signupRequest := &dto.UserSignupRequestDTO{}
	if !r.decodeJSON(w, req, signupRequest) {
		r.incCounter(metrics.SignupErrorsTotal)
		return
	}

	startTime := time.Now()
	userID, err := r.UserService.RegisterUser(req.Context(), signupRequest.Username, signupRequest.Password)
	if err != nil {
		r.incCounter(metrics.SignupErrorsTotal)
		if errors.Is(err, userrepo.ErrUsernameTaken) {
			r.errorResponse(w, http.StatusConflict, ErrUsernameTaken, ErrFailedToRegisterUser)
			return
		}
		if errors.Is(err, userrepo.ErrInvalidUsername) {
			r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, ErrInvalidUsername)
			return
		}
		r.internalError(w, ErrFailedToRegisterUser, err)
		return
	}

	r.incCounter(metrics.SignupSuccessTotal)
	r.observeSince(metrics.SignupDurationSeconds, startTime)

	r.writeJSON(w, http.StatusCreated, &dto.UserSignupResponseDTO{
		Message: fmt.Sprintf(MsgUserCreatedFormat, userID),
		UserID:  userID,
	})
}

// Login checks the credentials and sets the session cookie.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	r.incCounter(metrics.LoginRequestsTotal)

	loginRequest := &dto.LoginRequestDTO{}
	if !r.decodeJSON(w, req, loginRequest) {
		r.incCounter(metrics.LoginFailedTotal)
		return
	}

	startTime := time.Now()
	user, err := r.UserService.ValidateLogin(req.Context(), loginRequest.Username, loginRequest.Password)
	r.observeSince(metrics.LoginDurationSeconds, startTime)
	if err != nil {
		r.incCounter(metrics.LoginFailedTotal)
		r.internalError(w, ErrInvalidCredentials, err)
		return
	}
	if user == nil {
		r.incCounter(metrics.LoginFailedTotal)
		r.errorResponse(w, http.StatusUnauthorized, ErrInvalidCredentials, ErrInvalidCredentials)
		return
	}

	sessionToken, err := auth.CreateToken(user.ID, user.Username, r.PrivateKey)
	if err != nil {
		r.incCounter(metrics.LoginFailedTotal)
		r.internalError(w, ErrFailedToGenerateToken, err)
		return
	}
	r.incCounter(metrics.LoginSuccessTotal)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   req.TLS != nil,
	})

	r.writeJSON(w, http.StatusOK, &dto.LoginResponseDTO{
		Message: MsgLoginSuccessful,
		UserID:  user.ID,
	})
}

// Me returns the user behind the current session.
func (r *Route) Me(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	user, err := r.UserService.GetUserByID(req.Context(), userID)
	if err != nil {
		r.internalError(w, ErrUserNotFound, err)
		return
	}
	if user == nil {
		r.errorResponse(w, http.StatusNotFound, ErrUserNotFound, ErrSessionUserMissing)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.UserResponseDTO{ID: user.ID, Username: user.Username})
}
