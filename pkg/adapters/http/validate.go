package http

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// validateRequests rejects requests that do not match the documented
// operation. Paths the document does not describe pass through.
func (s *Server) validateRequests() (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(s.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.logger.Debug("request rejected by OpenAPI validation", "path", r.URL.Path, "err", err)
				s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
