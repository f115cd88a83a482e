package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vet-clinic-admin/internal/ports/auth"
)

type staticSource struct {
	p   auth.Profile
	err error
}

func (s staticSource) CurrentProfile(context.Context) (auth.Profile, error) { return s.p, s.err }

func TestRequireSession(t *testing.T) {
	var seen auth.Profile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetProfile(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	RequireSession(staticSource{err: errors.New("no session")})(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	RequireSession(staticSource{p: auth.Profile{ID: 2, Name: "Ana"}})(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ana", seen.Name)
}
