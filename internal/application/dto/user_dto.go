package dto

import "time"

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}
