package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/quotations"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/pagination"
)

// ListQuotations returns a cursor page of the studio's quotations.
func ListQuotations(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), middleware.StudioUUIDFromContext(r.Context()), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetQuotation returns the quotation with its reconstructed hierarchy.
func GetQuotation(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "quotationID"), "quotationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Detail(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// CreateQuotation opens a fresh draft.
func CreateQuotation(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quotations.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quotation, err := svc.Create(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quotation)
	}
}

// UpdateQuotation patches header fields and optionally replaces the item
// subtree. Fields outside the header allow-list are dropped, so decoding is
// lenient rather than strict.
func UpdateQuotation(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "quotationID"), "quotationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in quotations.UpdateInput
		if err := validators.DecodeJSONBodyLenient(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Update(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id,
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ReviseQuotation creates the next version under the same quotation number.
func ReviseQuotation(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "quotationID"), "quotationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quotation, err := svc.Revision(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quotation)
	}
}

// DuplicateQuotation clones a quotation under a fresh number at version 1.
func DuplicateQuotation(svc *quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "quotationID"), "quotationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quotation, err := svc.Duplicate(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quotation)
	}
}
