package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "collections:idemp:"

var (
	errMissingRequestAt = errors.New("missing " + HeaderRequestAt)
	errBadRequestAt     = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")

	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey scopes a request id to one route and one concrete resource path.
func buildKey(method, route, target, requestID string) string {
	var sb strings.Builder
	sb.WriteString(keyPrefix)
	sb.WriteString(strings.ToLower(method))
	sb.WriteByte(':')
	sb.WriteString(route)
	sb.WriteByte(':')
	sb.WriteString(target)
	sb.WriteByte(':')
	sb.WriteString(strings.ToLower(requestID))
	return sb.String()
}

// validReqID accepts a lowercase canonical UUID or 32 lowercase hex characters.
func validReqID(id string) bool {
	id = strings.TrimSpace(id)
	if id != strings.ToLower(id) {
		return false
	}
	if reHex32.MatchString(id) {
		return true
	}
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	return err == nil && u != uuid.Nil
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds or RFC3339 with
// a zone. Timestamps without a zone are rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingRequestAt
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errBadRequestAt
}

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return idempEntry{}, err
	}
	return e, nil
}

func releaseKey(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, payload, ttl).Err()
}
