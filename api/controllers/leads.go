package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/leads"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// ListLeads returns a cursor page of the studio's pipeline.
func ListLeads(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := leads.ListParams{
			Stage:  enums.LeadStage(r.URL.Query().Get("stage")),
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		page, err := svc.List(r.Context(), middleware.StudioUUIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetLead returns one lead.
func GetLead(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Get(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

// CreateLead opens a new lead.
func CreateLead(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in leads.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Create(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

// UpdateLead patches lead fields.
func UpdateLead(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in leads.UpdateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Update(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id, in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

// DeleteLead removes a lead.
func DeleteLead(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// TransitionLead moves a lead through the pipeline.
func TransitionLead(svc *leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in leads.TransitionInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Transition(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id,
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
