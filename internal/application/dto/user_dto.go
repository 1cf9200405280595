package dto

import "time"

// RegisterRequest entrada de POST /api/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Mobile      string `json:"mobile" validate:"required"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Name        string `json:"name" validate:"required,max=200"`
	Role        string `json:"role" validate:"required"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
}

// LoginRequest entrada de POST /api/auth/login. Login es email o móvil.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary identidad devuelta junto al token.
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

// TokenResponse salida de register y login.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserSummary `json:"user"`
}

// UserResponse perfil completo (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// UserListResponse salida de GET /api/users.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SetUserStatusRequest entrada de PATCH /api/users/:id/status.
type SetUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
