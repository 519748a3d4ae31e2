// Package metrics names every metric the service exports and registers them
// on an interfaces.Metrics collector.
package metrics

import (
	"github.com/haguru/filmdb/internal/interfaces"
)

var (
	SignupDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets  = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	FilmDurationSecondsBuckets   = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
)

const (
	SignupRequestsTotal       = "signup_requests_total"
	SignupRequestsTotalHelp   = "Total number of signup requests received"
	SignupSuccessTotal        = "signup_success_total"
	SignupSuccessTotalHelp    = "Total number of successful signup requests"
	SignupErrorsTotal         = "signup_errors_total"
	SignupErrorsTotalHelp     = "Total number of errors during signup requests"
	SignupDurationSeconds     = "signup_duration_seconds"
	SignupDurationSecondsHelp = "Duration of signup requests in seconds"

	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	LoginRateLimitedTotal     = "login_rate_limited_total"
	LoginRateLimitedTotalHelp = "Total number of login requests that were rate limited"

	FilmRequestsTotal            = "film_requests_total"
	FilmRequestsTotalHelp        = "Total number of film requests by operation"
	FilmErrorsTotal              = "film_errors_total"
	FilmErrorsTotalHelp          = "Total number of failed film requests by operation"
	FilmOperationDurationSeconds = "film_operation_duration_seconds"
	FilmOperationDurationHelp    = "Duration of film operations in seconds"

	// LabelOperation is the label carried by the film metrics.
	LabelOperation = "operation"
)

// Film operation label values.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Register adds the service metrics to m. It panics when called twice on the
// same collector, like prometheus.MustRegister.
func Register(m interfaces.Metrics) {
	m.RegisterCounter(SignupRequestsTotal, SignupRequestsTotalHelp)
	m.RegisterCounter(SignupSuccessTotal, SignupSuccessTotalHelp)
	m.RegisterCounter(SignupErrorsTotal, SignupErrorsTotalHelp)
	m.RegisterHistogram(SignupDurationSeconds, SignupDurationSecondsHelp, SignupDurationSecondsBuckets)

	m.RegisterCounter(LoginRequestsTotal, LoginRequestsTotalHelp)
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounter(LoginFailedTotal, LoginFailedTotalHelp)
	m.RegisterHistogram(LoginDurationSeconds, LoginDurationSecondsHelp, LoginDurationSecondsBuckets)
	m.RegisterCounter(LoginRateLimitedTotal, LoginRateLimitedTotalHelp)

	labels := []string{LabelOperation}
	m.RegisterCounterVec(FilmRequestsTotal, FilmRequestsTotalHelp, labels)
	m.RegisterCounterVec(FilmErrorsTotal, FilmErrorsTotalHelp, labels)
	m.RegisterHistogramVec(FilmOperationDurationSeconds, FilmOperationDurationHelp, FilmDurationSecondsBuckets, labels)
}
