package model

// Closed string-backed enums for every status-like field. The store keeps the
// raw string; code only ever sees the typed constants.

// StatusServico is the lifecycle state of a service order.
type StatusServico string

const (
	StatusAguardandoAceite StatusServico = "aguardando_aceite"
	StatusAceito           StatusServico = "aceito"
	StatusColetado         StatusServico = "coletado"
	StatusConcluido        StatusServico = "concluido"
	StatusRecusado         StatusServico = "recusado"
	StatusCancelado        StatusServico = "cancelado"
)

func (s StatusServico) IsValid() bool {
	switch s {
	case StatusAguardandoAceite, StatusAceito, StatusColetado,
		StatusConcluido, StatusRecusado, StatusCancelado:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transition is possible.
func (s StatusServico) Terminal() bool {
	return s == StatusConcluido || s == StatusRecusado
}

// StatusPagamento applies to both orders and ledger entries.
type StatusPagamento string

const (
	PagamentoPendente StatusPagamento = "pendente"
	PagamentoPago     StatusPagamento = "pago"
)

func (s StatusPagamento) IsValid() bool {
	return s == PagamentoPendente || s == PagamentoPago
}

// MetodoPagamento is how the client pays for an order.
type MetodoPagamento string

const (
	MetodoPix              MetodoPagamento = "pix"
	MetodoDinheiro         MetodoPagamento = "dinheiro"
	MetodoFaturadoRecibo   MetodoPagamento = "faturado_recibo"
	MetodoFaturadoPlanilha MetodoPagamento = "faturado_planilha"
)

func (m MetodoPagamento) IsValid() bool {
	switch m {
	case MetodoPix, MetodoDinheiro, MetodoFaturadoRecibo, MetodoFaturadoPlanilha:
		return true
	}
	return false
}

// TipoLancamento classifies a ledger entry. Amounts are stored as unsigned
// magnitudes; the sign is a function of the type (see Sinal).
type TipoLancamento string

const (
	LancamentoComissao  TipoLancamento = "comissao"
	LancamentoReceita   TipoLancamento = "receita"
	LancamentoVale      TipoLancamento = "vale"
	LancamentoDespesa   TipoLancamento = "despesa"
	LancamentoDebito    TipoLancamento = "debito"
	LancamentoPagamento TipoLancamento = "pagamento"
)

func (t TipoLancamento) IsValid() bool {
	switch t {
	case LancamentoComissao, LancamentoReceita, LancamentoVale,
		LancamentoDespesa, LancamentoDebito, LancamentoPagamento:
		return true
	}
	return false
}

// Sinal returns +1 for additive types (comissao, receita) and -1 for
// deductive ones (vale, despesa, debito, pagamento).
func (t TipoLancamento) Sinal() int64 {
	if t == LancamentoComissao || t == LancamentoReceita {
		return 1
	}
	return -1
}

// TipoParada distinguishes pickup from dropoff stops.
type TipoParada string

const (
	ParadaColeta  TipoParada = "coleta"
	ParadaEntrega TipoParada = "entrega"
)

func (t TipoParada) IsValid() bool {
	return t == ParadaColeta || t == ParadaEntrega
}

// Periodicidade drives the recurring-installment generator.
type Periodicidade string

const (
	PeriodicidadeSemanal   Periodicidade = "semanal"
	PeriodicidadeQuinzenal Periodicidade = "quinzenal"
	PeriodicidadeMensal    Periodicidade = "mensal"
)

func (p Periodicidade) IsValid() bool {
	switch p {
	case PeriodicidadeSemanal, PeriodicidadeQuinzenal, PeriodicidadeMensal:
		return true
	}
	return false
}

// RolUsuario gates route access.
type RolUsuario string

const (
	RolAdmin     RolUsuario = "admin"
	RolOperador  RolUsuario = "operador"
	RolPrestador RolUsuario = "prestador"
)
