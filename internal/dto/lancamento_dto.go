package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecorrenciaRequest expands the entry into Parcelas installments.
type RecorrenciaRequest struct {
	Periodicidade string `json:"periodicidade" validate:"required,oneof=semanal quinzenal mensal"`
	Parcelas      int    `json:"parcelas"      validate:"required,min=2"`
}

type CriarLancamentoRequest struct {
	Tipo            string  `json:"tipo"            validate:"required,oneof=comissao receita vale despesa debito pagamento"`
	Descricao       string  `json:"descricao"       validate:"required,min=3"`
	ValorCentavos   int64   `json:"valor_centavos"  validate:"required,gt=0"`
	StatusPagamento string  `json:"status_pagamento" validate:"omitempty,oneof=pendente pago"`
	DataLancamento  string  `json:"data_lancamento" validate:"required"` // YYYY-MM-DD
	DataVencimento  *string `json:"data_vencimento"`
	ServicoID       *string `json:"servico_id"   validate:"omitempty,uuid"`
	// PrestadorID routes the entry to the provider-scoped ledger.
	PrestadorID         *string `json:"prestador_id" validate:"omitempty,uuid"`
	IncluirNoFinanceiro *bool   `json:"incluir_no_financeiro"`

	Recorrencia *RecorrenciaRequest `json:"recorrencia" validate:"omitempty"`
}

type LancamentoFilter struct {
	Inicio string `form:"inicio"` // YYYY-MM-DD
	Fim    string `form:"fim"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LancamentoResponse struct {
	ID              string  `json:"id"`
	Tipo            string  `json:"tipo"`
	Descricao       string  `json:"descricao"`
	ValorCentavos   int64   `json:"valor_centavos"`
	// ValorAssinadoCentavos applies the sign-by-type rule.
	ValorAssinadoCentavos int64   `json:"valor_assinado_centavos"`
	StatusPagamento       string  `json:"status_pagamento"`
	DataLancamento        string  `json:"data_lancamento"`
	DataVencimento        *string `json:"data_vencimento"`
	ServicoID             *string `json:"servico_id"`
	PrestadorID           *string `json:"prestador_id"`
	IncluirNoFinanceiro   *bool   `json:"incluir_no_financeiro,omitempty"`
}

type LancamentoListResponse struct {
	Data []LancamentoResponse `json:"data"`
}
