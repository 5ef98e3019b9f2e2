package middleware

import (
	"net/http"

	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// StudioContext rejects requests whose token is not scoped to a studio.
func StudioContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if StudioIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "studio context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
