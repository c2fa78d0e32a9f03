package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarPrestadorRequest struct {
	Nome               string          `json:"nome"                validate:"required,min=2,max=100"`
	PercentualComissao decimal.Decimal `json:"percentual_comissao" validate:"min=0,max=100"`
	Telefone           *string         `json:"telefone"`
	Email              *string         `json:"email" validate:"omitempty,email"`
	ChavePix           *string         `json:"chave_pix"`
	Veiculo            *string         `json:"veiculo"`
}

type AtualizarPrestadorRequest struct {
	Nome               *string          `json:"nome" validate:"omitempty,min=2,max=100"`
	PercentualComissao *decimal.Decimal `json:"percentual_comissao"`
	Telefone           *string          `json:"telefone"`
	Email              *string          `json:"email" validate:"omitempty,email"`
	ChavePix           *string          `json:"chave_pix"`
	Veiculo            *string          `json:"veiculo"`
}

// PeriodoFilter bounds balance and settlement queries. Dates are YYYY-MM-DD;
// Fim is inclusive (end of day).
type PeriodoFilter struct {
	Inicio string `form:"inicio" validate:"required"`
	Fim    string `form:"fim"    validate:"required"`
}

type QuitarPeriodoRequest struct {
	Inicio string `json:"inicio" validate:"required"`
	Fim    string `json:"fim"    validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrestadorResponse struct {
	ID                 string          `json:"id"`
	Nome               string          `json:"nome"`
	PercentualComissao decimal.Decimal `json:"percentual_comissao"`
	Telefone           *string         `json:"telefone"`
	Email              *string         `json:"email"`
	ChavePix           *string         `json:"chave_pix"`
	Veiculo            *string         `json:"veiculo"`
	Ativo              bool            `json:"ativo"`
}

// SaldoPrestadorResponse is the read-time derived period view — never stored.
// Only paid entries enter the sums; pending counts are informational.
type SaldoPrestadorResponse struct {
	PrestadorID string `json:"prestador_id"`
	Inicio      string `json:"inicio"`
	Fim         string `json:"fim"`

	ComissoesPagasCentavos int64 `json:"comissoes_pagas_centavos"`
	ReceitasPagasCentavos  int64 `json:"receitas_pagas_centavos"`
	ValesPagosCentavos     int64 `json:"vales_pagos_centavos"`
	DespesasPagasCentavos  int64 `json:"despesas_pagas_centavos"` // despesas + debitos
	PagamentosCentavos     int64 `json:"pagamentos_centavos"`

	SaldoCentavos int64 `json:"saldo_centavos"`

	PendentesPorTipo map[string]int `json:"pendentes_por_tipo"`
	LancamentoIDs    []string       `json:"lancamento_ids"`
}

type QuitacaoResponse struct {
	ID                    string   `json:"id"`
	PrestadorID           string   `json:"prestador_id"`
	Inicio                string   `json:"inicio"`
	Fim                   string   `json:"fim"`
	SaldoQuitadoCentavos  int64    `json:"saldo_quitado_centavos"`
	LancamentoIDs         []string `json:"lancamento_ids"`
	LancamentoPagamentoID *string  `json:"lancamento_pagamento_id"`
	Revertida             bool     `json:"revertida"`
	RevertidaEm           *string  `json:"revertida_em"`
	CreatedAt             string   `json:"created_at"`
}
