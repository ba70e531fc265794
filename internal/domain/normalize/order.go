// Package normalize convierte pedidos, cotizaciones, compras y remisiones que
// llegan en formas distintas (documento plano o con sobre attributes/data) en
// una única forma canónica con campos numéricos coercionados y total derivado.
//
// Es liberal a propósito: nunca falla, toda coerción cae a 0 y la entrada nula
// produce nil.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

// Cantidad y precio usan los alias de pricing (pricing.QuantityKeys,
// pricing.UnitPriceKeys) para que la línea normalizada valga lo mismo que en
// el calculador.
var (
	orderNumberKeys = []string{"numeroPedido", "numeroCotizacion", "numero"}
	productRefKeys  = []string{"producto", "product"}
)

// Order documento normalizado. Extra conserva el resto de campos del origen
// (ya aplanados); al serializar, los campos canónicos tienen prioridad.
type Order struct {
	ID           string
	Cliente      any
	Productos    []Line
	Total        float64
	NumeroPedido *string
	Shape        Shape
	Extra        map[string]any
}

// Line línea normalizada: cantidad y precio siempre numéricos.
type Line struct {
	Producto       any
	Cantidad       float64
	PrecioUnitario float64
	Total          float64
	Extra          map[string]any
}

// NormalizeOrder normaliza un documento decodificado de JSON. Devuelve nil si
// raw es nil o no es un objeto.
func NormalizeOrder(raw any) *Order {
	fields, ok := raw.(map[string]any)
	if !ok || fields == nil {
		return nil
	}

	doc := classifyDocument(fields)
	flat := doc.flatten()

	order := &Order{
		ID:    idFrom(flat),
		Shape: doc.shape(),
	}

	if v, ok := flat["cliente"]; ok {
		order.Cliente = classifyRef(v).resolve()
		flat["cliente"] = order.Cliente
	}

	if list, ok := flat["productos"].([]any); ok {
		order.Productos = make([]Line, 0, len(list))
		for _, item := range list {
			order.Productos = append(order.Productos, normalizeLine(item))
		}
	} else {
		order.Productos = []Line{}
	}

	if total, ok := explicitNumber(flat["total"]); ok {
		order.Total = total
	} else {
		order.Total = pricing.SumBy(order.Productos, func(l Line) any { return l.Total })
	}

	order.NumeroPedido = orderNumberFrom(flat)

	delete(flat, "productos")
	order.Extra = flat
	return order
}

// NormalizeOrderList normaliza cada elemento y descarta los nulos. Una
// entrada que no sea lista produce una lista vacía.
func NormalizeOrderList(raw any) []Order {
	list, ok := raw.([]any)
	if !ok {
		return []Order{}
	}
	out := make([]Order, 0, len(list))
	for _, item := range list {
		if o := NormalizeOrder(item); o != nil {
			out = append(out, *o)
		}
	}
	return out
}

// DecodeOrder decodifica JSON y normaliza; JSON inválido produce nil.
func DecodeOrder(b []byte) *Order {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	return NormalizeOrder(raw)
}

// DecodeOrderList decodifica JSON y normaliza la lista; JSON inválido produce
// una lista vacía.
func DecodeOrderList(b []byte) []Order {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return []Order{}
	}
	return NormalizeOrderList(raw)
}

func normalizeLine(raw any) Line {
	fields, _ := raw.(map[string]any)
	flat := copyFields(fields)

	var line Line
	for _, k := range productRefKeys {
		if v, ok := flat[k]; ok {
			resolved := classifyRef(v).resolve()
			flat[k] = resolved
			if line.Producto == nil {
				line.Producto = resolved
			}
		}
	}

	line.Cantidad = pricing.ParseLenientNumber(pricing.FirstPresent(flat, pricing.QuantityKeys))
	line.PrecioUnitario = pricing.ParseLenientNumber(pricing.FirstPresent(flat, pricing.UnitPriceKeys))
	if _, ok := flat["valorUnitario"]; ok {
		flat["valorUnitario"] = line.PrecioUnitario
	}

	if total, ok := explicitNumber(flat["total"]); ok {
		line.Total = total
	} else {
		line.Total = pricing.SubtotalGross(&pricing.LineItem{Quantity: line.Cantidad, UnitPrice: line.PrecioUnitario})
	}

	line.Extra = flat
	return line
}

// Fields devuelve el documento canónico como mapa (Extra + campos canónicos).
func (o *Order) Fields() map[string]any {
	out := copyFields(o.Extra)
	if o.ID != "" {
		out["id"] = o.ID
	}
	if o.Cliente != nil {
		out["cliente"] = o.Cliente
	}
	lines := make([]any, 0, len(o.Productos))
	for i := range o.Productos {
		lines = append(lines, o.Productos[i].Fields())
	}
	out["productos"] = lines
	out["total"] = o.Total
	if o.NumeroPedido != nil {
		out["numeroPedido"] = *o.NumeroPedido
	} else {
		out["numeroPedido"] = nil
	}
	return out
}

// MarshalJSON serializa la forma canónica.
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Fields())
}

// LineItems adapta las líneas al calculador de precios (incluye descuento).
func (o *Order) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(o.Productos))
	for i := range o.Productos {
		items = append(items, pricing.LineItemFromFields(o.Productos[i].Fields()))
	}
	return items
}

// Fields devuelve la línea canónica como mapa.
func (l *Line) Fields() map[string]any {
	out := copyFields(l.Extra)
	out["cantidad"] = l.Cantidad
	out["precioUnitario"] = l.PrecioUnitario
	out["total"] = l.Total
	return out
}

// MarshalJSON serializa la forma canónica de la línea.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Fields())
}

func idFrom(flat map[string]any) string {
	for _, k := range []string{"id", "_id"} {
		if s := scalarString(flat[k]); s != "" {
			return s
		}
	}
	return ""
}

func orderNumberFrom(flat map[string]any) *string {
	for _, k := range orderNumberKeys {
		if s := scalarString(flat[k]); s != "" {
			return &s
		}
	}
	return nil
}

// explicitNumber acepta un total enviado por el servidor solo si es un número
// JSON finito. Un string numérico no cuenta como total explícito; aplica igual
// al pedido y a cada línea.
func explicitNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, isFinite(t)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && isFinite(f)
	}
	return 0, false
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
