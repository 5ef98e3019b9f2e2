package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/types"
)

// WriteSuccess renders the payload inside the data envelope with status 200.
func WriteSuccess(w http.ResponseWriter, payload any) {
	WriteSuccessStatus(w, http.StatusOK, payload)
}

// WriteSuccessStatus renders the payload inside the data envelope with the
// supplied status code.
func WriteSuccessStatus(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: payload})
}

// WriteError maps the error to its wire shape. Coded errors carry their HTTP
// status and, where allowed, the original message; anything uncoded collapses
// to an opaque internal error.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	code := pkgerrors.CodeInternal
	message := ""
	var details any

	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
		message = typed.Message()
		details = typed.Details()
	}

	meta := pkgerrors.MetadataFor(code)
	body := types.APIError{Code: string(code), Message: meta.PublicMessage}
	if meta.DetailsAllowed {
		if message != "" {
			body.Message = message
		}
		body.Details = details
	}

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			dump := pkgerrors.Dump(err)
			ctx = logg.WithFields(ctx, map[string]any{
				"error_code":    dump.Code,
				"error_chain":   dump.Chain,
				"pg_code":       dump.PGCode,
				"pg_constraint": dump.PGConstraint,
				"pg_table":      dump.PGTable,
				"pg_detail":     dump.PGDetail,
			})
			logg.Error(ctx, "request.failed", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
