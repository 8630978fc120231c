package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/brk3/habitlog/internal/logger"
)

const bearerPrefix = "Bearer "

// tokenDigest hex-encodes the SHA-256 of a token. Only digests are kept in
// memory or written to logs.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// shortDigest is the loggable prefix of a digest.
func shortDigest(d string) string {
	if len(d) <= 16 {
		return d
	}
	return d[:16] + "..."
}

// authMiddleware requires the configured API token. It is a pass-through when
// no token is configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			logger.Warn("Missing bearer token", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		got := tokenDigest(token)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.tokenHash)) != 1 {
			logger.Warn("Rejected API token", "path", r.URL.Path, "token_hash", shortDigest(got))
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
