package controllers

import (
	"net/http"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/auth"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// Register creates a user account and opens a session.
func Register(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.RegisterInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.Register(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// Login authenticates credentials and opens a session.
func Login(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.LoginInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.Login(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// Refresh rotates the refresh token and re-mints the access token.
func Refresh(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.RefreshInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pair, err := svc.Refresh(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}

// Logout revokes the current session.
func Logout(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := middleware.TokenIDFromContext(r.Context())
		if jti == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}
		if err := svc.Logout(r.Context(), jti); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// SwitchStudio re-scopes the session to another studio the user belongs to.
func SwitchStudio(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			StudioID string `json:"studio_id" validate:"required,uuid"`
		}
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		studioID, err := validators.PathUUID(in.StudioID, "studio_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pair, err := svc.SwitchStudio(r.Context(),
			middleware.UserUUIDFromContext(r.Context()),
			studioID,
			middleware.TokenIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}
