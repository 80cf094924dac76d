package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itsatony/stationhub/internal/access"
	nuts "github.com/vaudience/go-nuts"
)

// SessionResolver maps a session token to the actor it authenticates
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*access.Actor, error)
}

type SessionConfig struct {
	CookieName string
}

// SessionMiddleware attaches the session actor, if any, to the request context.
// It never rejects a request; operations run their own guards.
type SessionMiddleware struct {
	resolver SessionResolver
	config   SessionConfig
}

type contextKey string

const (
	actorKey contextKey = "actor"
	tokenKey contextKey = "session_token"
)

func NewSessionMiddleware(resolver SessionResolver, config SessionConfig) *SessionMiddleware {
	if config.CookieName == "" {
		config.CookieName = "stationhub_session"
	}
	return &SessionMiddleware{resolver: resolver, config: config}
}

// Authenticate resolves the cookie or bearer token into an actor
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.Token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := m.resolver.ResolveSession(r.Context(), token)
		if err != nil {
			nuts.L.Warnf("[API] Ignoring invalid session on %s %s: %v", r.Method, r.URL.Path, err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(WithActor(r.Context(), actor), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Token returns the session token of the request, preferring the bearer header
func (m *SessionMiddleware) Token(r *http.Request) string {
	if token := extractToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(m.config.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// WithActor stores the actor in ctx
func WithActor(ctx context.Context, actor *access.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the authenticated actor or nil
func ActorFromContext(ctx context.Context) *access.Actor {
	actor, _ := ctx.Value(actorKey).(*access.Actor)
	return actor
}

// TokenFromContext returns the token of a resolved session, or ""
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func extractToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
