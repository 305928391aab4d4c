package validators

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Count int    `json:"count" validate:"min=1"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	var dest samplePayload
	return DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	t.Parallel()

	if err := decode(t, `{"name":"till","count":2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	err := decode(t, `{"name":`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	err := decode(t, `{"name":"till","count":1,"surprise":true}`)
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	t.Parallel()

	err := decode(t, `{"email":"not-an-email","count":0}`)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, found := details["name"]; !found {
		t.Fatalf("missing required field not reported: %v", details)
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message: %v", details)
	}
	if details["count"] != "must be at least 1" {
		t.Fatalf("unexpected count message: %v", details)
	}
}

func TestDecodeJSONBodyRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	padding := strings.Repeat("a", maxRequestBodyBytes)
	err := decode(t, `{"name":"`+padding+`","count":1}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for oversized body, got %v", err)
	}
}
