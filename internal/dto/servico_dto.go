package dto

import "github.com/google/uuid"

// All monetary fields cross the API boundary as integer centavos; all
// timestamps as ISO-8601 UTC strings; all ids as opaque strings.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ParadaRequest struct {
	Tipo       string  `json:"tipo"       validate:"required,oneof=coleta entrega"`
	Endereco   string  `json:"endereco"   validate:"required,min=3"`
	Observacao *string `json:"observacao"`
}

type CriarServicoRequest struct {
	ClienteID       *string         `json:"cliente_id"   validate:"omitempty,uuid"`
	ClienteNome     *string         `json:"cliente_nome" validate:"omitempty,min=2"`
	PrestadorID     string          `json:"prestador_id" validate:"required,uuid"`
	Paradas         []ParadaRequest `json:"paradas"      validate:"required,min=2,dive"`
	ValorCentavos   int64           `json:"valor_centavos"   validate:"min=0"`
	MetodoPagamento string          `json:"metodo_pagamento" validate:"required,oneof=pix dinheiro faturado_recibo faturado_planilha"`
	Agendado        bool            `json:"agendado"`
	AgendadoPara    *string         `json:"agendado_para"` // RFC 3339
	Urgente         bool            `json:"urgente"`
}

// AtualizarServicoRequest patches an order. Nil pointers leave the field
// untouched. Identity fields (cliente/prestador) are locked after
// acceptance for non-admins.
type AtualizarServicoRequest struct {
	ClienteID       *string          `json:"cliente_id"   validate:"omitempty,uuid"`
	ClienteNome     *string          `json:"cliente_nome"`
	PrestadorID     *string          `json:"prestador_id" validate:"omitempty,uuid"`
	Paradas         *[]ParadaRequest `json:"paradas"      validate:"omitempty,min=2,dive"`
	ValorCentavos   *int64           `json:"valor_centavos"   validate:"omitempty,min=0"`
	MetodoPagamento *string          `json:"metodo_pagamento" validate:"omitempty,oneof=pix dinheiro faturado_recibo faturado_planilha"`
	Agendado        *bool            `json:"agendado"`
	AgendadoPara    *string          `json:"agendado_para"`
	Urgente         *bool            `json:"urgente"`
}

type TransicaoRequest struct {
	Alvo string `json:"alvo" validate:"required,oneof=aceito coletado concluido recusado"`
	// Motivo is required when Alvo == recusado.
	Motivo *string `json:"motivo"`
	// MarcarPago flips the order and its linked company ledger entry to paid
	// on completion (PIX flow).
	MarcarPago bool `json:"marcar_pago"`
}

type CancelarServicoRequest struct {
	Motivo *string `json:"motivo"`
}

type ServicoFilter struct {
	Status      string     `form:"status"`
	PrestadorID *uuid.UUID `form:"-"`
	Data        string     `form:"data"` // YYYY-MM-DD
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ParadaResponse struct {
	Ordem      int     `json:"ordem"`
	Tipo       string  `json:"tipo"`
	Endereco   string  `json:"endereco"`
	Observacao *string `json:"observacao"`
}

type ServicoResponse struct {
	ID               string           `json:"id"`
	Numero           string           `json:"numero"`
	ClienteID        *string          `json:"cliente_id"`
	ClienteNome      *string          `json:"cliente_nome"`
	PrestadorID      string           `json:"prestador_id"`
	Paradas          []ParadaResponse `json:"paradas"`
	ValorCentavos    int64            `json:"valor_centavos"`
	ComissaoCentavos int64            `json:"comissao_centavos"`
	MetodoPagamento  string           `json:"metodo_pagamento"`
	StatusPagamento  string           `json:"status_pagamento"`
	Agendado         bool             `json:"agendado"`
	AgendadoPara     *string          `json:"agendado_para"`
	Urgente          bool             `json:"urgente"`
	Status           string           `json:"status"`
	// Atrasado is computed at read time, never stored.
	Atrasado bool `json:"atrasado"`

	ValorOriginalCentavos    *int64  `json:"valor_original_centavos,omitempty"`
	ComissaoOriginalCentavos *int64  `json:"comissao_original_centavos,omitempty"`
	MotivoCancelamento       *string `json:"motivo_cancelamento,omitempty"`
	CanceladoEm              *string `json:"cancelado_em,omitempty"`

	AceitoPor   *string `json:"aceito_por,omitempty"`
	AceitoEm    *string `json:"aceito_em,omitempty"`
	ConcluidoEm *string `json:"concluido_em,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type ServicoListResponse struct {
	Data  []ServicoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
