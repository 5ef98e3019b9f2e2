package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
)

type samplePayload struct {
	Title *string `json:"title"`
	Email string  `json:"email" validate:"omitempty,email"`
}

func decodeRequest(t *testing.T, body string, strict bool) (samplePayload, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var dst samplePayload
	var err error
	if strict {
		err = DecodeJSONBody(w, req, &dst)
	} else {
		err = DecodeJSONBodyLenient(w, req, &dst)
	}
	return dst, err
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decodeRequest(t, `{"title":"Villa","internal_notes":"x"}`, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyLenientDropsUnknownFields(t *testing.T) {
	dst, err := decodeRequest(t, `{"title":"Villa","internal_notes":"x","nested":{"a":1}}`, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Title == nil || *dst.Title != "Villa" {
		t.Fatalf("known field should survive, got %+v", dst)
	}
}

func TestDecodeJSONBodyRejectsEmptyBody(t *testing.T) {
	_, err := decodeRequest(t, ``, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsTrailingGarbage(t *testing.T) {
	_, err := decodeRequest(t, `{"title":"a"}{"title":"b"}`, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRunsFieldValidation(t *testing.T) {
	_, err := decodeRequest(t, `{"email":"not-an-email"}`, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
