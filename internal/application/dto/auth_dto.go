package dto

// LoginRequest entrada para login con la contraseña compartida del administrador.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}

// ChangePasswordRequest body para PUT /api/auth/password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ThemeRequest body para PUT /api/config/theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse tema actual de la interfaz.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
