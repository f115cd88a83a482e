package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"vet-clinic-admin/internal/app"
	_ "vet-clinic-admin/internal/docs"
	"vet-clinic-admin/internal/domain/console"
	"vet-clinic-admin/internal/domain/images"
	"vet-clinic-admin/internal/domain/session"
	"vet-clinic-admin/internal/middleware"
	"vet-clinic-admin/internal/platform/logger"
)

func NewRouter(a *app.App) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLog(a.Log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Login/logout/sesión actual quedan abiertos
	session.RegisterRoutes(r, a.Sessions)

	// Todo lo demás requiere un administrador con sesión
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession(a.Sessions))
		console.RegisterRoutes(pr, a.Workspace)
		images.RegisterRoutes(pr, a.Images)
	})

	return r
}

func requestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"request_id": chimw.GetReqID(r.Context()),
			})
		})
	}
}
