package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"vet-clinic-admin/internal/ports/auth"
)

type ctxKey string

const profileKey ctxKey = "profile"

// ProfileSource devuelve el administrador logueado o error si no hay sesión.
type ProfileSource interface {
	CurrentProfile(ctx context.Context) (auth.Profile, error)
}

// RequireSession corta con 401 si no hay perfil guardado; si lo hay, lo deja
// en el contexto. Se lee en cada request: logout surte efecto inmediato.
func RequireSession(src ProfileSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := src.CurrentProfile(r.Context())
			if err != nil || p.ID <= 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetProfile(ctx context.Context) (auth.Profile, bool) {
	v := ctx.Value(profileKey)
	if v == nil {
		return auth.Profile{}, false
	}
	p, ok := v.(auth.Profile)
	return p, ok
}
