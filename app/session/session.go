// Package session identifies the browser a request comes from. Each browser
// owns one invoice draft and one registry editor on the server.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

const CookieName = "facturier_session"

// Middleware attaches the session ID from the session cookie to the request
// context, issuing a new cookie when it is missing or malformed.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				id = cookie.Value
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

func GetID(c context.Context) (string, error) {
	id, ok := c.Value(sessionKey).(string)
	if !ok || id == "" {
		return "", errors.New("session not found")
	}
	return id, nil
}

type key struct{}

var sessionKey = key{}
