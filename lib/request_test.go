package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Count int    `json:"count" validate:"required,min=1"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"chai","count":2}`))

	body, err := ExtractAndValidateBody[sampleRequest](r)
	if err != nil {
		t.Fatalf("valid body returned error: %v", err)
	}
	if body.Name != "chai" || body.Count != 2 {
		t.Errorf("decoded body = %+v", body)
	}
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"chai","count":2,"extra":true}`))

	if _, err := ExtractAndValidateBody[sampleRequest](r); err == nil {
		t.Error("unknown field was accepted")
	}
}

func TestExtractAndValidateBodyMapsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))

	_, err := ExtractAndValidateBody[sampleRequest](r)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got := map[string]string{}
	for _, fieldErr := range validationErr.Errors {
		got[fieldErr.Field] = fieldErr.Message
	}
	if got["name"] != "must be at least 2" {
		t.Errorf("name error = %q", got["name"])
	}
	if got["count"] != "is required" {
		t.Errorf("count error = %q", got["count"])
	}
}

func TestExtractAndValidateBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

	if _, err := ExtractAndValidateBody[sampleRequest](r); err == nil {
		t.Error("malformed JSON was accepted")
	}
}
