package query

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxSearchTerms limita cuántos TextOr puede agregar un request
const maxSearchTerms = 10

// Normalize convierte los params en un Filter. Los valores opcionales inválidos
// o negativos se descartan y el resto de la búsqueda sigue. El único error es
// un ValidationError por un Scope.ReferenceID mal formado.
func (e Endpoint) Normalize(params Params, scope Scope) (Filter, error) {
	var filter Filter

	if scope.ReferenceID != "" && e.ReferenceField != "" {
		id := strings.TrimSpace(scope.ReferenceID)
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return Filter{}, &ValidationError{Field: string(e.ReferenceField), Message: "invalid object id"}
		}
		filter.add(Reference{field: e.ReferenceField, id: strings.ToLower(id)})
	}

	for _, b := range e.Exact {
		if v := params.Get(b.Params...); v != "" {
			filter.add(ExactMatch{field: b.Field, value: v})
		}
	}

	for _, b := range e.Ranges {
		lo, hasLo := parseBound(params.Get(b.MinParams...))
		hi, hasHi := parseBound(params.Get(b.MaxParams...))
		if !hasLo && !hasHi {
			continue
		}
		r := Range{field: b.Field}
		if hasLo {
			r.min = &lo
		}
		if hasHi {
			r.max = &hi
		}
		filter.add(r)
	}

	for _, b := range e.AtLeast {
		raw := strings.TrimSuffix(params.Get(b.Params...), "+")
		if n, ok := parseBound(raw); ok {
			filter.add(Range{field: b.Field, min: &n})
		}
	}

	for _, b := range e.Sets {
		values := params.List(b.Params...)
		if len(values) == 0 {
			continue
		}
		for i := range values {
			values[i] = strings.ToLower(values[i])
		}
		filter.add(SetContainsAll{field: b.Field, values: values})
	}

	for _, b := range e.Flags {
		if v, ok := parseFlag(params.Get(b.Params...)); ok {
			filter.add(Flag{field: b.Field, value: v})
		}
	}

	if len(e.TextFields) > 0 {
		for _, term := range searchTerms(params.Get(e.SearchParams...)) {
			filter.add(TextOr{fields: e.TextFields, term: term})
		}
	}

	if scope.Public && e.VerifiedField != "" {
		filter.add(Flag{field: e.VerifiedField, value: true})
	}

	return filter, nil
}

// parseBound acepta números finitos y no negativos
func parseBound(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

func parseFlag(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// searchTerms separa por espacios, pasa a minúscula y saca duplicados
func searchTerms(raw string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(raw) {
		term := strings.ToLower(word)
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		if len(terms) == maxSearchTerms {
			break
		}
	}
	return terms
}
