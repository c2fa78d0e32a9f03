package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CriarUsuarioRequest struct {
	Username    string  `json:"username"     validate:"required,min=1,max=150"`
	Nome        string  `json:"nome"         validate:"required,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Password    string  `json:"password"     validate:"required,min=8"`
	Rol         string  `json:"rol"          validate:"required,oneof=admin operador prestador"`
	PrestadorID *string `json:"prestador_id" validate:"omitempty,uuid"`
}

type AtualizarUsuarioRequest struct {
	Nome        string  `json:"nome"         validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Rol         string  `json:"rol"          validate:"omitempty,oneof=admin operador prestador"`
	PrestadorID *string `json:"prestador_id" validate:"omitempty,uuid"`
	Password    string  `json:"password"     validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Nome        string  `json:"nome"`
	Email       *string `json:"email"`
	Rol         string  `json:"rol"`
	PrestadorID *string `json:"prestador_id"`
	Ativo       bool    `json:"ativo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
