package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/passforge/passforge-go/internal/auth"
)

type contextKey string

const subjectKey contextKey = "subject"

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadScheme     = errors.New("invalid authorization format")
)

// JWTAuth rejects requests without a valid operator bearer token and stores
// the token subject in the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the subject stored by JWTAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey).(string)
	return sub, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingHeader
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", errBadScheme
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	slog.Debug("rejected request", "path", r.URL.Path, "reason", err, "request_id", chimw.GetReqID(r.Context()))
	w.Header().Set("WWW-Authenticate", `Bearer realm="passforge"`)
	writeJSONError(w, http.StatusUnauthorized, err.Error())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
