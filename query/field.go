// Package query compila los parámetros de un listado en un Plan independiente
// del store: un filtro tipado, un orden de una lista permitida y una paginación
// acotada.
//
// Este paquete es el único lugar donde se construyen predicados. Los stores
// reciben un Plan y lo traducen; nunca ven las claves crudas del request.
package query

// Field es un campo del documento que puede usar un predicado o un orden. Solo
// existen las constantes de abajo, así un parámetro del request nunca se
// convierte en nombre de campo.
type Field string

const (
	FieldID             Field = "_id"
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldAddress        Field = "address"
	FieldCity           Field = "city"
	FieldProjectName    Field = "projectName"
	FieldCategory       Field = "category"
	FieldType           Field = "type"
	FieldStatus         Field = "status"
	FieldPrice          Field = "price"
	FieldSize           Field = "size"
	FieldBedrooms       Field = "bedrooms"
	FieldBathrooms      Field = "bathrooms"
	FieldAmenities      Field = "amenities"
	FieldHighROI        Field = "highROI"
	FieldVerified       Field = "verified"
	FieldAgentID        Field = "agentId"
	FieldCreatedAt      Field = "createdAt"
	FieldUpdatedAt      Field = "updatedAt"
	FieldEmail          Field = "email"
	FieldBio            Field = "bio"
	FieldSpecialization Field = "specialization"
	FieldListingsCount  Field = "listingsCount"
)

// DefaultSortField es el orden por defecto y también el desempate que se agrega
// después de cualquier otra clave.
const DefaultSortField = FieldCreatedAt

func (f Field) String() string {
	return string(f)
}
