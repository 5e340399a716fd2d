package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q, want application/json", ct)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"}, "req-1")

	if rec.Code != 200 {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Error != nil {
		t.Errorf("envelope = %+v", env)
	}
	if env.RequestID != "req-1" {
		t.Errorf("requestId = %q", env.RequestID)
	}
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 404, "not_found", "leave request not found", "req-2")

	if rec.Code != 404 {
		t.Fatalf("status %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Error.Code != "not_found" || env.Error.Details != nil {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestFailWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	FailWithDetails(rec, 400, "invalid_payload", "missing required fields", []string{"email", "name"}, "req-3")

	if rec.Code != 400 {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "invalid_payload" {
		t.Fatalf("error = %+v", env.Error)
	}
	details, ok := env.Error.Details.([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("details = %#v, want two field names", env.Error.Details)
	}
	if details[0] != "email" || details[1] != "name" {
		t.Errorf("details = %#v", details)
	}
}
