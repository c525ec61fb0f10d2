package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/pkg/utils"
)

const sessionCookie = "qs_session"

type contextKey string

const sessionKey contextKey = "wizard_session"

// WizardSession resolves (or creates) the wizard session behind the request's
// cookie and stores it on the context. Every /api/wizard route runs behind it.
func WizardSession(manager *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolve(r, manager)
			if sess == nil {
				created, err := manager.Create()
				if err != nil {
					logger.Error("Failed to create wizard session", zap.Error(err))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				sess = created

				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sess.Token.String(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess.Touch()

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(r *http.Request, manager *session.Manager) *session.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}

	token, err := uuid.Parse(c.Value)
	if err != nil {
		return nil
	}

	sess, ok := manager.Get(token)
	if !ok {
		return nil
	}
	return sess
}

// SessionFromContext returns the wizard session set by WizardSession.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}
