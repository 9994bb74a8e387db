package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoID(t *testing.T, got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetID(r.Context())
		require.NoError(t, err)
		*got = id
	})
}

func TestMiddleware_IssuesCookie(t *testing.T) {
	var id string
	rec := httptest.NewRecorder()
	Middleware(echoID(t, &id)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestMiddleware_ReusesCookie(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})

	var id string
	rec := httptest.NewRecorder()
	Middleware(echoID(t, &id)).ServeHTTP(rec, req)

	assert.Equal(t, existing, id)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddleware_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})

	var id string
	rec := httptest.NewRecorder()
	Middleware(echoID(t, &id)).ServeHTTP(rec, req)

	assert.NotEqual(t, "../../etc", id)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestGetID_Missing(t *testing.T) {
	_, err := GetID(context.Background())
	assert.Error(t, err)
}
