package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrledger/internal/domain/hrerr"
)

func TestStatusMapsErrorKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("employee 4: %w", hrerr.ErrNotFound), http.StatusNotFound, "not_found"},
		{&hrerr.ReferentialConflictError{Entity: "department", ID: 1, Count: 2}, http.StatusConflict, "referential_conflict"},
		{&hrerr.InsufficientBalanceError{LeaveType: "annual", Available: 1, Required: 3}, http.StatusUnprocessableEntity, "insufficient_balance"},
		{&hrerr.CapacityError{Key: "employees", Size: 10, Limit: 5}, http.StatusRequestEntityTooLarge, "capacity_exceeded"},
		{hrerr.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, code := Status(tc.err)
		if status != tc.status || code != tc.code {
			t.Fatalf("%v: expected %d/%s, got %d/%s", tc.err, tc.status, tc.code, status, code)
		}
	}
}

func TestFailErrorIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, fmt.Errorf("delete: %w", &hrerr.ReferentialConflictError{Entity: "position", ID: 2, Count: 3}), "req-1")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if count, _ := env.Error.Details["count"].(float64); count != 3 {
		t.Fatalf("expected count 3 in details, got %v", env.Error.Details)
	}
}

func TestFailErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, errors.New("dial tcp 10.0.0.1:5432: refused"), "")

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != "internal error" {
		t.Fatalf("expected generic message, got %q", env.Error.Message)
	}
}

type codeRecorder struct {
	http.ResponseWriter
	codes []string
}

func (c *codeRecorder) RecordErrorCode(code string) { c.codes = append(c.codes, code) }

type wrapper struct{ http.ResponseWriter }

func (w wrapper) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func TestFailRecordsCodeThroughWrappers(t *testing.T) {
	recorder := &codeRecorder{ResponseWriter: httptest.NewRecorder()}
	Fail(wrapper{recorder}, http.StatusBadRequest, "invalid_body", "bad", "")
	if len(recorder.codes) != 1 || recorder.codes[0] != "invalid_body" {
		t.Fatalf("expected recorded code, got %v", recorder.codes)
	}
}
