package service

import "github.com/shopspring/decimal"

// CalcularComissao computes the provider's cut of an order:
// valor × percentual / 100, on integer centavos with half-up rounding.
// Pure function — recomputed whenever valor or prestador changes on an
// order still in a commission-bearing (non-cancelled) state.
func CalcularComissao(valorCentavos int64, percentual decimal.Decimal) int64 {
	if valorCentavos == 0 || percentual.IsZero() {
		return 0
	}
	return decimal.NewFromInt(valorCentavos).
		Mul(percentual).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
