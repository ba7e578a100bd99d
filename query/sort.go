package query

import (
	"fmt"
	"strings"
)

// Direction es el sentido del orden; los valores coinciden con el 1 / -1 de
// MongoDB
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// SortKey es un término de orden
type SortKey struct {
	Field     Field
	Direction Direction
}

// SortSpec es una lista ordenada de claves; solo la construye ResolveSort
type SortSpec struct {
	keys []SortKey
}

// Keys devuelve los términos de orden, primero el principal
func (s SortSpec) Keys() []SortKey {
	out := make([]SortKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Primary devuelve la primera clave
func (s SortSpec) Primary() SortKey {
	if len(s.keys) == 0 {
		return SortKey{Field: DefaultSortField, Direction: Descending}
	}
	return s.keys[0]
}

func (s SortSpec) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = fmt.Sprintf("%s:%s", k.Field, k.Direction)
	}
	return strings.Join(parts, ",")
}

// ResolveSort valida field contra la lista permitida del endpoint. Un campo
// desconocido pasa a createdAt y un sentido desconocido a descendente. Si la
// clave principal no es createdAt se agrega createdAt descendente, así las
// páginas son estables cuando la principal tiene repetidos.
func (e Endpoint) ResolveSort(field, order string) SortSpec {
	primary, ok := e.SortFields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		primary = DefaultSortField
	}

	direction := Descending
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		direction = Ascending
	}

	keys := []SortKey{{Field: primary, Direction: direction}}
	if primary != DefaultSortField {
		keys = append(keys, SortKey{Field: DefaultSortField, Direction: Descending})
	}
	return SortSpec{keys: keys}
}
