package domain

// PropertyAction es el tipo de cambio de un PropertyEvent
type PropertyAction string

const (
	PropertyCreated PropertyAction = "create"
	PropertyUpdated PropertyAction = "update"
	PropertyDeleted PropertyAction = "delete"
)

// PropertyEvent se publica en la cola cada vez que cambia una propiedad
type PropertyEvent struct {
	Action     PropertyAction `json:"action"`
	PropertyID string         `json:"property_id"`
}
