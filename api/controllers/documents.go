package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/documents"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// ListDocuments returns the studio's document registry.
func ListDocuments(svc *documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := documents.ListParams{
			Kind: enums.DocumentKind(r.URL.Query().Get("kind")),
		}
		if raw := r.URL.Query().Get("lead_id"); raw != "" {
			leadID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr("lead_id must be a valid uuid"))
				return
			}
			params.LeadID = &leadID
		}
		rows, err := svc.List(r.Context(), middleware.StudioUUIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateDocument registers an externally stored file.
func CreateDocument(svc *documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in documents.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doc, err := svc.Create(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, doc)
	}
}

// DeleteDocument removes a registry entry.
func DeleteDocument(svc *documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "documentID"), "documentID")
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
