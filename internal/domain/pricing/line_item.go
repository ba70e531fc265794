package pricing

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Alias aceptados por campo. Conviven dos convenciones de nombres en los datos
// (valorUnitario / precioUnitario) más los nombres en inglés del formulario;
// gana el primer alias no nulo. El normalizador de pedidos usa las mismas
// listas para que una línea valga lo mismo en ambos lados.
var (
	QuantityKeys  = []string{"cantidad", "quantity"}
	UnitPriceKeys = []string{"valorUnitario", "precioUnitario", "unitPrice", "precio"}
)

var (
	discountKeys   = []string{"descuento", "discountPercent"}
	productRefKeys = []string{"producto", "product", "productRef", "productoId"}
)

var hundred = decimal.NewFromInt(100)

// LineItem es una fila de producto dentro de una cotización, pedido, compra o
// remisión. DiscountPercent va en puntos porcentuales (10 = 10%).
type LineItem struct {
	ProductRef      string  `json:"productRef,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

// LineItemFromFields construye un LineItem desde un documento ya decodificado,
// resolviendo alias y coerciones. Un mapa nil produce el ítem vacío.
func LineItemFromFields(fields map[string]any) LineItem {
	if fields == nil {
		return LineItem{}
	}
	return LineItem{
		ProductRef:      productRefFrom(FirstPresent(fields, productRefKeys)),
		Quantity:        ParseLenientNumber(FirstPresent(fields, QuantityKeys)),
		UnitPrice:       ParseLenientNumber(FirstPresent(fields, UnitPriceKeys)),
		DiscountPercent: ParseLenientNumber(FirstPresent(fields, discountKeys)),
	}
}

// UnmarshalJSON decodifica un ítem con cualquiera de los alias. Un valor que
// no sea objeto JSON produce el ítem vacío sin error.
func (it *LineItem) UnmarshalJSON(b []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		*it = LineItem{}
		return nil
	}
	*it = LineItemFromFields(fields)
	return nil
}

// SubtotalGross cantidad × precio unitario, redondeado.
func SubtotalGross(it *LineItem) float64 {
	return toMoney(gross(it))
}

// DiscountAmount cantidad × precio unitario × (descuento/100), redondeado.
func DiscountAmount(it *LineItem) float64 {
	return toMoney(discount(it))
}

// SubtotalNet cantidad × precio unitario × (1 − descuento/100), redondeado.
func SubtotalNet(it *LineItem) float64 {
	return toMoney(gross(it).Sub(discount(it)))
}

// IsValidLineItem indica si la línea puede agregarse al formulario: referencia
// de producto, cantidad > 0 y precio > 0. El calculador no lo exige.
func IsValidLineItem(it *LineItem) bool {
	if it == nil {
		return false
	}
	return it.ProductRef != "" && it.Quantity > 0 && it.UnitPrice > 0
}

func gross(it *LineItem) decimal.Decimal {
	if it == nil {
		return decimal.Zero
	}
	return dec(it.Quantity).Mul(dec(it.UnitPrice))
}

func discount(it *LineItem) decimal.Decimal {
	if it == nil {
		return decimal.Zero
	}
	return gross(it).Mul(dec(it.DiscountPercent)).Div(hundred)
}

// FirstPresent devuelve el valor del primer alias presente y no nulo.
func FirstPresent(fields map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// productRefFrom extrae el identificador de una referencia de producto: id
// suelto, objeto embebido (_id / id, o nombre si no trae id) o sobre
// {data: {...}}.
func productRefFrom(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case map[string]any:
		if data, ok := t["data"]; ok && data != nil {
			return productRefFrom(data)
		}
		for _, k := range []string{"_id", "id", "nombre", "name"} {
			if ref := productRefFrom(t[k]); ref != "" {
				return ref
			}
		}
	}
	return ""
}
