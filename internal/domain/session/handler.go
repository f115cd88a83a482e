package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/session", func(sr chi.Router) {
		sr.Post("/", loginHandler(svc))
		sr.Get("/", currentHandler(svc))
		sr.Delete("/", logoutHandler(svc))
	})
}

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contraseña"`
}

type sessionResponse struct {
	AdminID   int64     `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida correo y contraseña contra el servidor remoto y guarda el perfil público del administrador.
// @Tags session
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} map[string]string "faltan correo o contraseña"
// @Failure 401 {object} map[string]string "credenciales incorrectas"
// @Failure 502 {object} map[string]string "el servidor remoto falló"
// @Router /session [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, toSessionResponse(sess))
		case errors.Is(err, ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, clinic.ErrNetwork), errors.Is(err, clinic.ErrServer):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

// currentHandler godoc
// @Summary Sesión actual
// @Tags session
// @Produce json
// @Success 200 {object} sessionResponse
// @Failure 401 {object} map[string]string
// @Router /session [get]
func currentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Current(r.Context())
		if errors.Is(err, ErrNoSession) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags session
// @Success 204
// @Router /session [delete]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toSessionResponse(s Session) sessionResponse {
	return sessionResponse{
		AdminID:   s.Profile.ID,
		Name:      s.Profile.Name,
		Email:     s.Profile.Email,
		SessionID: s.ID,
		StartedAt: s.StartedAt,
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
