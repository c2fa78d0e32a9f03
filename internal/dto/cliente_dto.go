package dto

type CriarClienteRequest struct {
	Nome      string  `json:"nome"      validate:"required,min=2,max=100"`
	Documento *string `json:"documento" validate:"omitempty,max=20"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
}

type AtualizarClienteRequest struct {
	Nome      *string `json:"nome"      validate:"omitempty,min=2,max=100"`
	Documento *string `json:"documento" validate:"omitempty,max=20"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Documento *string `json:"documento"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"`
	Endereco  *string `json:"endereco"`
	Ativo     bool    `json:"ativo"`
}
