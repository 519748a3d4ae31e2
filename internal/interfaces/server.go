package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	// AddRoute registers handler for method and pattern, wrapped by the given middlewares.
	AddRoute(method, pattern string, handler http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) error
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
