package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/redis"
)

const idempotencyHeader = "Idempotency-Key"

type idempotencyRule struct {
	method  string
	matches func(path string) bool
	ttl     time.Duration
	scope   string
}

// Mutating endpoints that clients retry: signup, invites, quotation
// revision/duplicate, and purchase-order state changes.
var idempotencyRules = []idempotencyRule{
	{
		method:  http.MethodPost,
		matches: func(p string) bool { return p == "/api/v1/auth/register" },
		ttl:     24 * time.Hour,
		scope:   "auth.register",
	},
	{
		method:  http.MethodPost,
		matches: func(p string) bool { return p == "/api/v1/invites" },
		ttl:     24 * time.Hour,
		scope:   "invites.create",
	},
	{
		method:  http.MethodPost,
		matches: func(p string) bool { return strings.HasSuffix(p, "/revision") && strings.Contains(p, "/quotations/") },
		ttl:     24 * time.Hour,
		scope:   "quotations.revision",
	},
	{
		method:  http.MethodPost,
		matches: func(p string) bool { return strings.HasSuffix(p, "/duplicate") && strings.Contains(p, "/quotations/") },
		ttl:     24 * time.Hour,
		scope:   "quotations.duplicate",
	},
	{
		method:  http.MethodPost,
		matches: func(p string) bool { return strings.Contains(p, "/purchase-orders/") && (strings.HasSuffix(p, "/issue") || strings.HasSuffix(p, "/cancel") || strings.HasSuffix(p, "/receipts")) },
		ttl:     24 * time.Hour,
		scope:   "procurement.orders",
	},
}

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	RequestHash string `json:"request_hash"`
}

// Idempotency replays previously captured responses when the same
// Idempotency-Key is resubmitted against a guarded endpoint.
func Idempotency(store redis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rule := matchRule(r)
			if rule == nil || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			hash := requestHash(r.Method, r.URL.Path, UserIDFromContext(r.Context()), body)
			cacheKey := store.IdempotencyKey(rule.scope, key)

			if raw, err := store.Get(r.Context(), cacheKey); err == nil {
				var stored storedResponse
				if json.Unmarshal([]byte(raw), &stored) == nil {
					if stored.RequestHash != hash {
						responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict,
							"idempotency key reused with a different request"))
						return
					}
					if stored.ContentType != "" {
						w.Header().Set("Content-Type", stored.ContentType)
					}
					w.Header().Set("Idempotency-Replayed", "true")
					w.WriteHeader(stored.Status)
					_, _ = w.Write(stored.Body)
					return
				}
			} else if err != goredis.Nil {
				if logg != nil {
					logg.Error(r.Context(), "idempotency.lookup_failed", err)
				}
			}

			capture := &responseCapture{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(capture, r)

			if capture.status >= http.StatusOK && capture.status < http.StatusInternalServerError {
				stored := storedResponse{
					Status:      capture.status,
					ContentType: capture.Header().Get("Content-Type"),
					Body:        capture.body.Bytes(),
					RequestHash: hash,
				}
				if payload, err := json.Marshal(stored); err == nil {
					if _, err := store.SetNX(r.Context(), cacheKey, payload, rule.ttl); err != nil && logg != nil {
						logg.Error(r.Context(), "idempotency.store_failed", err)
					}
				}
			}
		})
	}
}

func matchRule(r *http.Request) *idempotencyRule {
	for i := range idempotencyRules {
		rule := &idempotencyRules[i]
		if rule.method == r.Method && rule.matches(r.URL.Path) {
			return rule
		}
	}
	return nil
}

func requestHash(method, path, userID string, body []byte) string {
	sum := sha256.New()
	sum.Write([]byte(method))
	sum.Write([]byte("|"))
	sum.Write([]byte(path))
	sum.Write([]byte("|"))
	sum.Write([]byte(userID))
	sum.Write([]byte("|"))
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}

type responseCapture struct {
	http.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(status int) {
	if c.status == 0 {
		c.status = status
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}
