package pricing

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Política única de coerción: cualquier valor que no se pueda leer como número
// finito vale 0. Los campos numéricos llegan como number, string numérico,
// null o ausentes según el backend que produjo el documento.

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseLenientNumber interpreta v como número completo (equivalente a
// Number(v) || 0): números, strings numéricos (con espacios alrededor),
// booleanos y json.Number. Cualquier otra cosa devuelve 0.
func ParseLenientNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		v = s
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case decimal.Decimal:
		return finiteOrZero(t.InexactFloat64())
	case *decimal.Decimal:
		if t == nil {
			return 0
		}
		return finiteOrZero(t.InexactFloat64())
	case map[string]any, []any:
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// ParseLenientFloat lee el prefijo numérico de un string (como parseFloat:
// "12.5kg" -> 12.5). Los números se devuelven tal cual; booleanos y demás
// tipos valen 0.
func ParseLenientFloat(v any) float64 {
	switch t := v.(type) {
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case bool:
		return 0
	case json.Number:
		return ParseLenientFloat(t.String())
	}
	return ParseLenientNumber(v)
}

// ParseLenientInt lee la parte entera (como parseInt: "7 cajas" -> 7,
// 5.9 -> 5). Valores fuera del rango de int64 valen 0.
func ParseLenientInt(v any) int64 {
	var f float64
	switch t := v.(type) {
	case string:
		m := leadingInt.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case bool:
		return 0
	case json.Number:
		return ParseLenientInt(t.String())
	default:
		f = ParseLenientNumber(v)
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func finiteOrZero(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
