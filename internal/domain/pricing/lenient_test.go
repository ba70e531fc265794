package pricing_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

func TestParseLenientNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"string numérico", "20", 20},
		{"string con espacios", "  3.5 ", 3.5},
		{"string vacío", "", 0},
		{"string no numérico", "abc", 0},
		{"string con sufijo", "12kg", 0},
		{"bool true", true, 1},
		{"bool false", false, 0},
		{"json.Number", json.Number("42.1"), 42.1},
		{"decimal", decimal.RequireFromString("9.99"), 9.99},
		{"mapa", map[string]any{"a": 1}, 0},
		{"slice", []any{1}, 0},
		{"NaN", math.NaN(), 0},
		{"string Infinity", "Infinity", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, pricing.ParseLenientNumber(c.in))
		})
	}
}

func TestParseLenientFloat_PrefijoNumerico(t *testing.T) {
	assert.Equal(t, 12.5, pricing.ParseLenientFloat("12.5kg"))
	assert.Equal(t, 0.5, pricing.ParseLenientFloat(".5"))
	assert.Equal(t, -3.0, pricing.ParseLenientFloat(" -3 unidades"))
	assert.Equal(t, 0.0, pricing.ParseLenientFloat("kg12"))
	assert.Equal(t, 0.0, pricing.ParseLenientFloat(true))
	assert.Equal(t, 8.25, pricing.ParseLenientFloat(8.25))
	assert.Equal(t, 0.0, pricing.ParseLenientFloat(nil))
}

func TestParseLenientInt_ParteEntera(t *testing.T) {
	assert.Equal(t, int64(7), pricing.ParseLenientInt("7 cajas"))
	assert.Equal(t, int64(5), pricing.ParseLenientInt("5.9"))
	assert.Equal(t, int64(5), pricing.ParseLenientInt(5.9))
	assert.Equal(t, int64(-2), pricing.ParseLenientInt(-2.7))
	assert.Equal(t, int64(0), pricing.ParseLenientInt("sin stock"))
	assert.Equal(t, int64(0), pricing.ParseLenientInt(nil))
	assert.Equal(t, int64(0), pricing.ParseLenientInt(false))
	assert.Equal(t, int64(0), pricing.ParseLenientInt(1e30))
}
