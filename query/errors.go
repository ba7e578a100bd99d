package query

import "fmt"

// ValidationError es un error de validación duro: el request en sí no sirve.
// Los valores opcionales inválidos nunca lo generan; se descartan.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
