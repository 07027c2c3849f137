package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

const (
	idempotencyHeader      = "Idempotency-Key"
	replayedHeader         = "Idempotent-Replayed"
	defaultIdempotencyTTL  = 24 * time.Hour
	inFlightTTL            = time.Minute
	maxIdempotencyKeyBytes = 200
	maxIdempotentBodyBytes = 1 << 20
)

// idempotencyRecord is either an in-flight claim (Pending) or a finished
// response ready for replay.
type idempotencyRecord struct {
	Pending     bool   `json:"pending,omitempty"`
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass straight through. A key is claimed before
// the handler runs, so a concurrent duplicate gets 409 instead of a second
// order. Only 2xx responses are kept; anything else releases the claim and the
// key can be retried.
func Idempotency(store pkgredis.IdempotencyStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if idempotencyKey == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			if len(idempotencyKey) > maxIdempotencyKeyBytes {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header too long"))
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					err := pkgerrors.New(pkgerrors.CodeValidation, "request body too large").
						WithDetails(map[string]any{"maxBytes": tooLarge.Limit})
					responses.WriteError(ctx, logg, w, err)
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := hashBody(body)
			key := store.IdempotencyKey(buildScope(r), idempotencyKey)

			claim, err := encodeRecord(idempotencyRecord{Pending: true, RequestHash: requestHash})
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode idempotency claim"))
				return
			}
			claimed, err := store.SetNX(ctx, key, claim, inFlightTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim idempotency key"))
				return
			}
			if !claimed {
				replayExisting(ctx, store, logg, w, key, requestHash)
				return
			}

			rec := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			// The client may be gone; finishing the bookkeeping still matters.
			bgCtx := context.WithoutCancel(ctx)
			status := defaultStatus(rec.status)
			if status < 200 || status >= 300 {
				if delErr := store.Del(bgCtx, key); delErr != nil {
					logError(bgCtx, logg, "idempotency.release_failed", delErr)
				}
				return
			}

			payload, err := encodeRecord(idempotencyRecord{
				RequestHash: requestHash,
				Status:      status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        base64.StdEncoding.EncodeToString(rec.body.Bytes()),
			})
			if err != nil {
				logError(bgCtx, logg, "idempotency.marshal_failed", err)
				return
			}
			if setErr := store.Set(bgCtx, key, payload, ttl); setErr != nil {
				logError(bgCtx, logg, "idempotency.persist_failed", setErr)
			}
		})
	}
}

func replayExisting(ctx context.Context, store pkgredis.IdempotencyStore, logg *logger.Logger, w http.ResponseWriter, key, requestHash string) {
	stored, err := store.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		// Claim expired or was released between SetNX and Get.
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotent request is being processed, retry shortly"))
		return
	}
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
		return
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
		return
	}
	switch {
	case record.RequestHash != requestHash:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
	case record.Pending:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotent request is being processed, retry shortly"))
	default:
		w.Header().Set(replayedHeader, "true")
		writeStoredResponse(w, record)
	}
}

// buildScope separates keys per route and admin so the same key on two
// surfaces never collides.
func buildScope(r *http.Request) string {
	parts := []string{r.Method, r.URL.Path}
	if adminID, ok := AdminIDFromContext(r.Context()); ok {
		parts = append(parts, adminID.String())
	}
	return strings.Join(parts, "|")
}

func encodeRecord(record idempotencyRecord) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func writeStoredResponse(w http.ResponseWriter, record idempotencyRecord) {
	if record.ContentType != "" {
		w.Header().Set("Content-Type", record.ContentType)
	}
	w.WriteHeader(record.Status)
	if decoded, err := base64.StdEncoding.DecodeString(record.Body); err == nil {
		_, _ = w.Write(decoded)
	}
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func defaultStatus(value int) int {
	if value == 0 {
		return http.StatusOK
	}
	return value
}

// responseCapture tees the handler's output so it can be stored for replay.
type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
