package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/netx"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

// UserFromContext returns the caller set by the auth middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// TokenFromContext returns the bearer token the caller presented.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// authenticate admits requests carrying a valid, unrevoked bearer token.
// Every rejection looks the same to the client.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := netx.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		user, err := s.auth.VerifyToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrInvalidToken) {
				s.logger.Error(r.Context(), "token verification failed", "error", err.Error())
			}
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}

// currentUser is the handler-side view of UserFromContext. Handlers behind
// authenticate always have one; its absence is a wiring bug.
func currentUser(r *http.Request) (*models.User, string, error) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		return nil, "", common.ErrorUnauthorized
	}
	t, _ := TokenFromContext(r.Context())
	return u, t, nil
}
