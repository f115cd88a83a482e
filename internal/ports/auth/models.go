package auth

// Profile es el perfil público del administrador que devuelve el login.
type Profile struct {
	ID    int64  `json:"IdAdministrador"`
	Name  string `json:"Nombre"`
	Email string `json:"Correo"`
}
