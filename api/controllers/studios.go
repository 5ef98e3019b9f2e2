package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/invites"
	"github.com/fitdesk-hq/fitdesk-backend/internal/studios"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// CreateStudio opens a new studio owned by the caller.
func CreateStudio(svc *studios.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in studios.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		studio, err := svc.Create(r.Context(), middleware.UserUUIDFromContext(r.Context()), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, studio)
	}
}

// GetStudio returns the active studio profile.
func GetStudio(svc *studios.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studio, err := svc.Get(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, studio)
	}
}

// UpdateStudio patches the active studio profile.
func UpdateStudio(svc *studios.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in studios.UpdateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		studio, err := svc.Update(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, studio)
	}
}

// ListMembers returns the studio's membership roster.
func ListMembers(svc *studios.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.Members(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// ListInvites returns the studio's outstanding invitations.
func ListInvites(svc *invites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateInvite issues a membership invitation.
func CreateInvite(svc *invites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in invites.CreateInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invite, err := svc.Create(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			enums.MemberRole(middleware.RoleFromContext(r.Context())),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, invite)
	}
}

// RevokeInvite cancels a pending invitation.
func RevokeInvite(svc *invites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "inviteID"), "inviteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Revoke(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			id,
			enums.MemberRole(middleware.RoleFromContext(r.Context()))); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "revoked"})
	}
}

// AcceptInvite redeems an invite token for the calling user.
func AcceptInvite(svc *invites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Token string `json:"token" validate:"required"`
		}
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Accept(r.Context(), middleware.UserUUIDFromContext(r.Context()), in.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
