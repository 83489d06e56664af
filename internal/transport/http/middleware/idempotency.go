package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hrledger/internal/platform/kv"
	"hrledger/internal/transport/http/api"
)

const IdempotencyHeader = "Idempotency-Key"

var ErrIdempotencyConflict = errors.New("idempotency key conflicts with existing request")

// StoredResponse is the replayable outcome of a request made under an
// idempotency key.
type StoredResponse struct {
	RequestHash string          `json:"requestHash"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

// IdempotencyStore keeps responses in the same backend as the records.
type IdempotencyStore struct {
	backend kv.Backend
}

func NewIdempotencyStore(backend kv.Backend) *IdempotencyStore {
	return &IdempotencyStore{backend: backend}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func idempotencyKey(actor, endpoint, key string) string {
	return "idempotency:" + actor + ":" + endpoint + ":" + key
}

func (s *IdempotencyStore) Check(ctx context.Context, actor, endpoint, key, requestHash string) (StoredResponse, bool, error) {
	if s == nil || s.backend == nil {
		return StoredResponse{}, false, nil
	}
	raw, found, err := s.backend.Get(ctx, idempotencyKey(actor, endpoint, key))
	if err != nil || !found {
		return StoredResponse{}, false, err
	}
	var stored StoredResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Unreadable entries are treated as absent and overwritten on save.
		return StoredResponse{}, false, nil
	}
	if stored.RequestHash != requestHash {
		return StoredResponse{}, false, ErrIdempotencyConflict
	}
	return stored, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, actor, endpoint, key string, response StoredResponse) error {
	if s == nil || s.backend == nil {
		return nil
	}
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, idempotencyKey(actor, endpoint, key), raw)
}

type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bodyRecorder) WriteHeader(code int) {
	b.status = code
	b.ResponseWriter.WriteHeader(code)
}

func (b *bodyRecorder) Unwrap() http.ResponseWriter {
	return b.ResponseWriter
}

func (b *bodyRecorder) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

// Idempotency replays the stored response of a POST retried with the same
// Idempotency-Key and body. Reusing a key with a different body is a 409.
// Server errors are not stored so the client may retry them.
func Idempotency(store *IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
			if r.Method != http.MethodPost || key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())

			payload, err := io.ReadAll(r.Body)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
					return
				}
				api.Fail(w, http.StatusBadRequest, "invalid_body", "could not read request body", requestID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(payload))

			actor := actorOrIPKey(r)
			endpoint := r.Method + " " + r.URL.Path
			hash := RequestHash(payload)

			stored, found, err := store.Check(r.Context(), actor, endpoint, key, hash)
			if errors.Is(err, ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used with a different request", requestID)
				return
			}
			if err != nil {
				slog.Error("idempotency lookup failed", "err", err, "requestId", requestID)
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
				return
			}
			if found {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replay", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			recorder := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			if recorder.status >= http.StatusInternalServerError || !json.Valid(recorder.body.Bytes()) {
				return
			}
			response := StoredResponse{RequestHash: hash, Status: recorder.status, Body: recorder.body.Bytes()}
			if err := store.Save(r.Context(), actor, endpoint, key, response); err != nil {
				slog.Warn("idempotency save failed", "err", err, "requestId", requestID)
			}
		})
	}
}
