package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/materials"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// ListMaterials returns the studio's material catalogue.
func ListMaterials(svc *materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := materials.ListParams{
			Category:     r.URL.Query().Get("category"),
			BelowReorder: r.URL.Query().Get("below_reorder") == "true",
			ActiveOnly:   r.URL.Query().Get("active") == "true",
		}
		rows, err := svc.List(r.Context(), middleware.StudioUUIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// GetMaterial returns one material.
func GetMaterial(svc *materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "materialID"), "materialID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.Get(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, material)
	}
}

// CreateMaterial adds a catalogue entry.
func CreateMaterial(svc *materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in materials.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.Create(r.Context(), middleware.StudioUUIDFromContext(r.Context()), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, material)
	}
}

// UpdateMaterial patches material fields.
func UpdateMaterial(svc *materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "materialID"), "materialID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in materials.UpdateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.Update(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id, in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, material)
	}
}
