package normalize

// Shape identifica la forma en que un backend entregó el documento.
type Shape string

const (
	// ShapeFlat documento estilo Mongo: campos en el primer nivel, _id o id.
	ShapeFlat Shape = "flat"
	// ShapeEnveloped documento {id, attributes: {...}}.
	ShapeEnveloped Shape = "enveloped"
)

// documentShape es la unión cerrada de las formas de documento conocidas.
// Una forma nueva se agrega como variante aquí y en classifyDocument.
type documentShape interface {
	shape() Shape
	flatten() map[string]any
}

type flatShape struct {
	fields map[string]any
}

func (s flatShape) shape() Shape { return ShapeFlat }

func (s flatShape) flatten() map[string]any {
	return copyFields(s.fields)
}

type envelopedShape struct {
	id         any
	attributes map[string]any
}

func (s envelopedShape) shape() Shape { return ShapeEnveloped }

// flatten sube los atributos al primer nivel; el id siempre es el exterior.
func (s envelopedShape) flatten() map[string]any {
	out := copyFields(s.attributes)
	if s.id != nil {
		out["id"] = s.id
	}
	return out
}

func classifyDocument(raw map[string]any) documentShape {
	if attrs, ok := raw["attributes"].(map[string]any); ok {
		return envelopedShape{id: raw["id"], attributes: attrs}
	}
	return flatShape{fields: raw}
}

// reference es la unión cerrada de las formas en que llega una referencia
// (cliente, producto): ausente, id suelto, objeto embebido, sobre {data: ...}
// u objeto {id, attributes}.
type reference interface {
	resolve() any
}

type refAbsent struct{}

func (refAbsent) resolve() any { return nil }

type refID struct {
	id any
}

func (r refID) resolve() any { return r.id }

type refEmbedded struct {
	fields map[string]any
}

func (r refEmbedded) resolve() any { return copyFields(r.fields) }

type refDataEnvelope struct {
	data any
}

// resolve desenvuelve data y aplana su contenido con las mismas reglas.
func (r refDataEnvelope) resolve() any {
	return classifyRef(r.data).resolve()
}

type refAttributes struct {
	id         any
	attributes map[string]any
}

func (r refAttributes) resolve() any {
	return envelopedShape{id: r.id, attributes: r.attributes}.flatten()
}

func classifyRef(v any) reference {
	switch t := v.(type) {
	case nil:
		return refAbsent{}
	case map[string]any:
		if data, ok := t["data"]; ok {
			return refDataEnvelope{data: data}
		}
		if attrs, ok := t["attributes"].(map[string]any); ok {
			return refAttributes{id: t["id"], attributes: attrs}
		}
		return refEmbedded{fields: t}
	default:
		return refID{id: t}
	}
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+4)
	for k, v := range in {
		out[k] = v
	}
	return out
}
