package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dskvich/assistant-chat/pkg/domain"
	"github.com/dskvich/assistant-chat/pkg/logger"
)

const SessionCookie = "assistant_chat_session"

type sessionKey struct{}

type SessionRepository interface {
	Save(session *domain.Session)
	GetByID(id string) (*domain.Session, bool)
}

// Session attaches the browser session to the request, starting a new one when
// the cookie is missing or the session has expired.
func Session(repo SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *domain.Session
			if c, err := r.Cookie(SessionCookie); err == nil {
				sess, _ = repo.GetByID(c.Value)
			}

			if sess == nil {
				sess = domain.NewSession(uuid.NewString(), time.Now())
				repo.Save(sess)

				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
				})
				slog.InfoContext(r.Context(), "Session started", "sessionID", sess.ID)
			}

			ctx := logger.ContextWithSessionID(r.Context(), sess.ID)
			ctx = context.WithValue(ctx, sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return sess, ok
}

// Chain applies middlewares so that the first one is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
