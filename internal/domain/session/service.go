// Package session guarda el perfil público del administrador logueado.
// Es, junto con la caché de imágenes, el único estado persistido local.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/ports/auth"
	"vet-clinic-admin/internal/ports/kv"
)

const StoreKey = "vetAdmin"

var (
	ErrNoSession    = errors.New("no active session")
	ErrInvalidInput = errors.New("correo y contraseña son obligatorios")
)

// Session = perfil público + metadatos locales. Nunca guarda la contraseña.
type Session struct {
	auth.Profile
	ID        string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
}

type Service struct {
	auth  auth.Authenticator
	store kv.Store
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func NewService(a auth.Authenticator, store kv.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		auth:  a,
		store: store,
		log:   log.With(map[string]any{"component": "session"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Login verifica contra el backend y, si responde bien, guarda el perfil.
// Un login fallido no toca la sesión existente.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	p, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Warn("login failed", map[string]any{"email": email, "err": err})
		return Session{}, err
	}

	sess := Session{
		Profile:   p,
		ID:        s.newID(),
		StartedAt: s.now().UTC(),
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("session: encode: %w", err)
	}
	if err := s.store.Set(ctx, StoreKey, b); err != nil {
		return Session{}, fmt.Errorf("session: save: %w", err)
	}

	s.log.Info("login ok", map[string]any{"admin_id": p.ID, "session_id": sess.ID})
	return sess, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, StoreKey); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.log.Info("logout", nil)
	return nil
}

// Current lee la sesión guardada. Sin sesión (o perfil inválido) => ErrNoSession.
func (s *Service) Current(ctx context.Context) (Session, error) {
	raw, err := s.store.Get(ctx, StoreKey)
	if errors.Is(err, kv.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Profile.ID <= 0 {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// CurrentProfile es lo que usa el middleware en cada request protegido.
func (s *Service) CurrentProfile(ctx context.Context) (auth.Profile, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return auth.Profile{}, err
	}
	return sess.Profile, nil
}
