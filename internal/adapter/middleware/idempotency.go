package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"

	// lifetime of the in-flight marker if the handler never finishes
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
	storeTimeout       = 2 * time.Second
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// captureWriter tees the response so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// attempt is one admitted mutating request.
type attempt struct {
	key      string
	reqID    string
	reqAt    time.Time
	bodyHash string
}

type idempotency struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes POSTs safe to retry. The key is method + route
// + concrete path + Ax-Request-Id, so one id may be reused across agents or
// campaigns. A replay with the same body gets the stored response; a
// different body or a still-running original gets 409. 5xx outcomes are not
// stored, so a transient failure can be retried with the same id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &idempotency{rdb: rdb, ttl: ttl, logger: logger}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			at, msg := m.parse(c)
			if msg != "" {
				return reject(c, http.StatusBadRequest, msg)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, m.rdb, at.key, idempEntry{
				InProgress:  true,
				BodySHA256:  at.bodyHash,
				RequestID:   at.reqID,
				RequestAtMS: at.reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				m.logger.Error("idempotency store unavailable", zap.String("key", at.key), zap.Error(err))
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !ok {
				return m.replay(ctx, c, at)
			}

			w := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}
			m.finish(at, w)
			return nil
		}
	}
}

// parse validates the headers and buffers the body. A non-empty message
// means the request is rejected.
func (m *idempotency) parse(c echo.Context) (attempt, string) {
	req := c.Request()

	reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
	if reqID == "" {
		return attempt{}, "missing " + HeaderRequestID
	}
	if !validReqID(reqID) {
		return attempt{}, "invalid " + HeaderRequestID + " format"
	}

	reqAt, err := parseAxRequestAt(req.Header.Get(HeaderRequestAt))
	if err != nil {
		return attempt{}, err.Error()
	}
	now := nowUTC()
	if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
		return attempt{}, HeaderRequestAt + " too skewed"
	}

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	return attempt{
		key:      buildKey(req.Method, c.Path(), req.URL.Path, reqID),
		reqID:    reqID,
		reqAt:    reqAt,
		bodyHash: bodyHash(body),
	}, ""
}

// replay answers a request whose key is already taken.
func (m *idempotency) replay(ctx context.Context, c echo.Context, at attempt) error {
	cur, err := loadEntry(ctx, m.rdb, at.key)
	if err != nil {
		m.logger.Warn("idempotency entry unreadable", zap.String("key", at.key), zap.Error(err))
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != at.bodyHash {
		return reject(c, http.StatusConflict, HeaderRequestID+" reused with different body")
	}
	if cur.InProgress || cur.Code == 0 {
		return reject(c, http.StatusConflict, "request is already in progress")
	}

	m.logger.Debug("idempotent replay", zap.String("key", at.key), zap.Int("status", cur.Code))
	if len(cur.Body) == 0 {
		return c.NoContent(cur.Code)
	}
	return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
}

// finish stores the outcome, or frees the key after a server error.
func (m *idempotency) finish(at attempt, w *captureWriter) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if w.code >= http.StatusInternalServerError {
		if err := releaseKey(ctx, m.rdb, at.key); err != nil {
			m.logger.Warn("idempotency release failed", zap.String("key", at.key), zap.Error(err))
		}
		return
	}
	err := saveFinal(ctx, m.rdb, at.key, idempEntry{
		Code:        w.code,
		Body:        w.body.Bytes(),
		BodySHA256:  at.bodyHash,
		RequestID:   at.reqID,
		RequestAtMS: at.reqAt.UnixMilli(),
		CreatedAt:   nowUTC(),
	}, m.ttl)
	if err != nil {
		m.logger.Warn("idempotency save failed", zap.String("key", at.key), zap.Error(err))
	}
}
