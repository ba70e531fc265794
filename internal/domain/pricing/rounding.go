// Package pricing contiene la aritmética de líneas de cotización, pedido,
// compra y remisión: redondeo monetario, coerción tolerante de números,
// subtotales por línea, totales agregados e indicadores de inventario.
//
// Todas las funciones son puras y totales: ante datos faltantes o mal formados
// devuelven 0 en lugar de fallar. No es un libro contable; los totales son
// informativos para la UI.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundMoney redondea a 2 decimales como floor(v*100+0.5)/100: las mitades
// suben hacia +∞ (-0.125 → -0.12) y se redondea el float tal como está
// representado (1.005 → 1). NaN e infinitos devuelven 0.
func RoundMoney(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	r := math.Floor(v*100+0.5) / 100
	if !isFinite(r) {
		return 0
	}
	return r
}

// toMoney pasa un acumulado decimal a float64 y lo redondea con RoundMoney.
func toMoney(d decimal.Decimal) float64 {
	return RoundMoney(d.InexactFloat64())
}

// dec convierte un float64 en decimal; los valores no finitos cuentan como 0.
func dec(v float64) decimal.Decimal {
	if !isFinite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
