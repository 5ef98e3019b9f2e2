package controllers

import (
	"net/http"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/internal/finance"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// FinanceSummary aggregates pipeline, quotation, and procurement value for
// the active studio.
func FinanceSummary(svc *finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func validationErr(message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}
