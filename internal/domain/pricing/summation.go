package pricing

import "github.com/shopspring/decimal"

// DefaultSumField campo sumado cuando no se indica otro.
const DefaultSumField = "total"

// SumField suma el campo indicado de cada registro (por defecto "total").
// Valores ausentes o no numéricos aportan 0.
func SumField(records []map[string]any, field string) float64 {
	if field == "" {
		field = DefaultSumField
	}
	return SumBy(records, func(r map[string]any) any {
		if r == nil {
			return nil
		}
		return r[field]
	})
}

// SumBy suma el valor que value extrae de cada elemento, con la misma política
// de coerción que SumField. Se usa para los KPIs del dashboard.
func SumBy[T any](list []T, value func(T) any) float64 {
	sum := decimal.Zero
	for _, item := range list {
		sum = sum.Add(dec(ParseLenientNumber(value(item))))
	}
	return toMoney(sum)
}
