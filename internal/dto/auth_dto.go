package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario" validate:"required"`
	Contrasena    string `json:"contraseña"     validate:"required"`
}

type RecuperarPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	Mensaje        string `json:"mensaje"`
	IDUsuario      uint   `json:"id_usuario"`
	Cargo          string `json:"cargo"`
	Estado         string `json:"estado"`
	NombreCompleto string `json:"nombre_completo"`
	TipoUsuario    string `json:"tipo_usuario"`
	Rut            string `json:"rut"`
	Token          string `json:"token"`
}

type TokenResponse struct {
	Mensaje string `json:"mensaje"`
	UserID  uint   `json:"user_id"`
}

// MensajeResponse is the plain acknowledgement used by the auth endpoints.
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
}
