package pricing

import "github.com/shopspring/decimal"

// Totals resumen derivado de una lista de líneas; se recalcula en cada render
// y nunca se persiste.
type Totals struct {
	GrossSubtotal float64 `json:"grossSubtotal"`
	TotalDiscount float64 `json:"totalDiscount"`
	NetTotal      float64 `json:"netTotal"`
}

// AggregateTotals suma subtotales brutos y descuentos de todas las líneas.
// Cada campo se redondea por separado; con listas largas el redondeo no es
// asociativo y se acepta esa aproximación.
func AggregateTotals(items []LineItem) Totals {
	if len(items) == 0 {
		return Totals{}
	}
	grossSum, discountSum := decimal.Zero, decimal.Zero
	for i := range items {
		grossSum = grossSum.Add(dec(SubtotalGross(&items[i])))
		discountSum = discountSum.Add(dec(DiscountAmount(&items[i])))
	}
	return Totals{
		GrossSubtotal: toMoney(grossSum),
		TotalDiscount: toMoney(discountSum),
		NetTotal:      toMoney(grossSum.Sub(discountSum)),
	}
}
