package auth

import (
	"context"
	"errors"
)

// Authenticator verifica credenciales contra el backend y devuelve el perfil o error.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Profile, error)
}

// ErrInvalidCredentials: el backend rechazó correo/contraseña.
var ErrInvalidCredentials = errors.New("invalid credentials")
