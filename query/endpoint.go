package query

// Binding asocia nombres de parámetros (gana el primero no vacío) a un campo
type Binding struct {
	Params []string
	Field  Field
}

// RangeBinding asocia un par de parámetros min/max a un campo numérico
type RangeBinding struct {
	MinParams []string
	MaxParams []string
	Field     Field
}

// Endpoint es la configuración del compilador para cada ruta. Las listas de
// orden permitidas cambian según la ruta y se declaran acá, no se comparten.
type Endpoint struct {
	Name         string
	DefaultLimit int

	// SortFields asocia las claves de orden del cliente (en minúscula) a campos
	SortFields map[string]Field

	// SearchParams nombra el parámetro de texto libre; TextFields son los
	// campos donde se busca
	SearchParams []string
	TextFields   []Field

	Exact   []Binding
	Ranges  []RangeBinding
	AtLeast []Binding
	Sets    []Binding
	Flags   []Binding

	// VerifiedField se fuerza a true para el público. Vacío significa que el
	// endpoint nunca aplica esa restricción.
	VerifiedField Field

	// ReferenceField recibe Scope.ReferenceID
	ReferenceField Field
}

// Scope lleva lo que decide el servidor sobre un request, no el cliente
type Scope struct {
	// Public es true para anónimos y usuarios sin privilegios
	Public bool
	// ReferenceID opcionalmente limita los resultados a un documento padre, por
	// ejemplo las propiedades de un agente. Tiene que ser un ObjectID válido.
	ReferenceID string
}

var propertyTextFields = []Field{FieldName, FieldDescription, FieldAddress}

var propertyFilters = struct {
	exact   []Binding
	ranges  []RangeBinding
	atLeast []Binding
	sets    []Binding
	flags   []Binding
}{
	exact: []Binding{
		{Params: []string{"category"}, Field: FieldCategory},
		{Params: []string{"type"}, Field: FieldType},
		{Params: []string{"status"}, Field: FieldStatus},
		{Params: []string{"city", "location"}, Field: FieldCity},
		{Params: []string{"projectName"}, Field: FieldProjectName},
	},
	ranges: []RangeBinding{
		{MinParams: []string{"minPrice"}, MaxParams: []string{"maxPrice"}, Field: FieldPrice},
		{MinParams: []string{"minSize"}, MaxParams: []string{"maxSize"}, Field: FieldSize},
	},
	atLeast: []Binding{
		{Params: []string{"beds", "bedrooms"}, Field: FieldBedrooms},
		{Params: []string{"bathrooms", "baths"}, Field: FieldBathrooms},
	},
	sets: []Binding{
		{Params: []string{"amenities", "amenities[]"}, Field: FieldAmenities},
	},
	flags: []Binding{
		{Params: []string{"highROI"}, Field: FieldHighROI},
	},
}

// PublicPropertySearch respalda las rutas públicas de listado y búsqueda
var PublicPropertySearch = Endpoint{
	Name:         "properties",
	DefaultLimit: 12,
	SortFields: map[string]Field{
		"createdat": FieldCreatedAt,
		"price":     FieldPrice,
		"name":      FieldName,
		"bedrooms":  FieldBedrooms,
		"beds":      FieldBedrooms,
		"size":      FieldSize,
	},
	SearchParams:   []string{"search", "q"},
	TextFields:     propertyTextFields,
	Exact:          propertyFilters.exact,
	Ranges:         propertyFilters.ranges,
	AtLeast:        propertyFilters.atLeast,
	Sets:           propertyFilters.sets,
	Flags:          propertyFilters.flags,
	VerifiedField:  FieldVerified,
	ReferenceField: FieldAgentID,
}

// AdminPropertyListing respalda la tabla del back-office. No filtra por
// verified y permite ordenar por los campos de auditoría.
var AdminPropertyListing = Endpoint{
	Name:         "admin-properties",
	DefaultLimit: 10,
	SortFields: map[string]Field{
		"createdat": FieldCreatedAt,
		"updatedat": FieldUpdatedAt,
		"price":     FieldPrice,
		"name":      FieldName,
		"bedrooms":  FieldBedrooms,
		"status":    FieldStatus,
		"city":      FieldCity,
	},
	SearchParams: []string{"search", "q"},
	TextFields:   propertyTextFields,
	Exact:        propertyFilters.exact,
	Ranges:       propertyFilters.ranges,
	AtLeast:      propertyFilters.atLeast,
	Sets:         propertyFilters.sets,
	Flags: append([]Binding{
		{Params: []string{"verified"}, Field: FieldVerified},
	}, propertyFilters.flags...),
	ReferenceField: FieldAgentID,
}

// AgentDirectory respalda el listado de agentes
var AgentDirectory = Endpoint{
	Name:         "agents",
	DefaultLimit: 12,
	SortFields: map[string]Field{
		"createdat":     FieldCreatedAt,
		"name":          FieldName,
		"listingscount": FieldListingsCount,
	},
	SearchParams: []string{"search", "q"},
	TextFields:   []Field{FieldName, FieldBio, FieldSpecialization},
	Exact: []Binding{
		{Params: []string{"city", "location"}, Field: FieldCity},
		{Params: []string{"specialization"}, Field: FieldSpecialization},
	},
	VerifiedField: FieldVerified,
}
