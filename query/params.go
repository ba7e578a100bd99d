package query

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Params son los parámetros crudos, sin validar, de un request de listado
type Params map[string][]string

// FromValues copia una query string ya parseada
func FromValues(values url.Values) Params {
	params := make(Params, len(values))
	for key, vals := range values {
		params[key] = append([]string(nil), vals...)
	}
	return params
}

// FromJSON decodifica un body que sea un objeto JSON. Los escalares pasan a
// string y los arrays a varios valores; se descartan los null y los objetos
// anidados. Un body vacío da params vacíos; cualquier cosa que no sea un objeto
// es un ValidationError.
func FromJSON(body []byte) (Params, error) {
	params := Params{}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, &ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}

	for key, value := range raw {
		switch v := value.(type) {
		case []interface{}:
			for _, item := range v {
				if s, ok := scalarString(item); ok {
					params[key] = append(params[key], s)
				}
			}
		default:
			if s, ok := scalarString(v); ok {
				params[key] = []string{s}
			}
		}
	}
	return params, nil
}

func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// Get devuelve el primer valor no vacío (sin espacios) bajo cualquiera de las
// claves
func (p Params) Get(keys ...string) string {
	for _, key := range keys {
		for _, v := range p[key] {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// List junta todos los valores bajo las claves, separa por comas, recorta
// espacios y descarta vacíos y duplicados. Se conserva el orden de aparición.
func (p Params) List(keys ...string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, key := range keys {
		for _, v := range p[key] {
			for _, part := range strings.Split(v, ",") {
				s := strings.TrimSpace(part)
				if s == "" {
					continue
				}
				if _, dup := seen[strings.ToLower(s)]; dup {
					continue
				}
				seen[strings.ToLower(s)] = struct{}{}
				out = append(out, s)
			}
		}
	}
	return out
}
