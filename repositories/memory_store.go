package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
)

// FieldValuer lee un campo de una fila para evaluarla en memoria
type FieldValuer[T any] func(row T, field query.Field) (interface{}, bool)

// MemoryStore evalúa planes sobre un slice en memoria. Se usa en los tests y
// replica la semántica de la traducción a MongoDB.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	rows  []T
	value FieldValuer[T]
	err   error
}

// NewMemoryStore crea un store con las filas dadas
func NewMemoryStore[T any](value FieldValuer[T], rows ...T) *MemoryStore[T] {
	return &MemoryStore[T]{rows: append([]T(nil), rows...), value: value}
}

// Put agrega una fila
func (s *MemoryStore[T]) Put(row T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
}

// Replace reemplaza por row la primera fila que cumple match
func (s *MemoryStore[T]) Replace(match func(T) bool, row T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if match(s.rows[i]) {
			s.rows[i] = row
			return true
		}
	}
	return false
}

// Remove borra la primera fila que cumple match
func (s *MemoryStore[T]) Remove(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if match(s.rows[i]) {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true
		}
	}
	return false
}

// First devuelve la primera fila que cumple match
func (s *MemoryStore[T]) First(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// FailWith hace que toda lectura posterior devuelva err; nil las restablece
func (s *MemoryStore[T]) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Find filtra, ordena y recorta las filas
func (s *MemoryStore[T]) Find(ctx context.Context, plan query.Plan) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := s.match(plan.Filter)
	keys := plan.Sort.Keys()
	sort.SliceStable(matched, func(i, j int) bool {
		for _, k := range keys {
			a, _ := s.value(matched[i], k.Field)
			b, _ := s.value(matched[j], k.Field)
			c := compareValues(a, b)
			if c == 0 {
				continue
			}
			if k.Direction == query.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})

	skip := plan.Pagination.Skip()
	if skip >= int64(len(matched)) {
		return []T{}, nil
	}
	end := skip + int64(plan.Pagination.Limit)
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return append([]T{}, matched[skip:end]...), nil
}

// Count cuenta las filas que coinciden
func (s *MemoryStore[T]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return 0, s.err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(s.match(filter))), nil
}

func (s *MemoryStore[T]) readErr(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

func (s *MemoryStore[T]) match(filter query.Filter) []T {
	var out []T
	for _, row := range s.rows {
		if Matches(row, filter, s.value) {
			out = append(out, row)
		}
	}
	return out
}

// Matches indica si la fila cumple todos los predicados del filtro
func Matches[T any](row T, filter query.Filter, value FieldValuer[T]) bool {
	for _, p := range filter.Predicates() {
		if !matchPredicate(row, p, value) {
			return false
		}
	}
	return true
}

func matchPredicate[T any](row T, p query.Predicate, value FieldValuer[T]) bool {
	switch pred := p.(type) {
	case query.ExactMatch:
		v, ok := value(row, pred.Field())
		s, isString := v.(string)
		return ok && isString && strings.EqualFold(s, pred.Value())

	case query.Range:
		v, ok := value(row, pred.Field())
		n, isNumber := toFloat(v)
		if !ok || !isNumber {
			return false
		}
		if lo, has := pred.Min(); has && n < lo {
			return false
		}
		if hi, has := pred.Max(); has && n > hi {
			return false
		}
		return true

	case query.SetContainsAll:
		v, ok := value(row, pred.Field())
		have, isList := v.([]string)
		if !ok || !isList {
			return false
		}
		for _, want := range pred.Values() {
			found := false
			for _, h := range have {
				if strings.EqualFold(h, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true

	case query.TextOr:
		term := strings.ToLower(pred.Term())
		for _, f := range pred.Fields() {
			v, ok := value(row, f)
			if s, isString := v.(string); ok && isString && strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
		return false

	case query.Flag:
		v, ok := value(row, pred.Field())
		b, isBool := v.(bool)
		return ok && isBool && b == pred.Value()

	case query.Reference:
		v, ok := value(row, pred.Field())
		s, isString := v.(string)
		return ok && isString && strings.EqualFold(s, pred.ID())

	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// compareValues ordena números, strings y fechas. Los strings se comparan byte
// a byte, como MongoDB sin collation. Valores faltantes o de distinto tipo
// cuentan como iguales.
func compareValues(a, b interface{}) int {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return 0
}

// PropertyValue expone los campos consultables de una propiedad
func PropertyValue(p domain.Property, field query.Field) (interface{}, bool) {
	switch field {
	case query.FieldID:
		return p.ID.Hex(), true
	case query.FieldName:
		return p.Name, true
	case query.FieldDescription:
		return p.Description, true
	case query.FieldAddress:
		return p.Address, true
	case query.FieldCity:
		return p.City, true
	case query.FieldProjectName:
		return p.ProjectName, true
	case query.FieldCategory:
		return p.Category, true
	case query.FieldType:
		return p.Type, true
	case query.FieldStatus:
		return p.Status, true
	case query.FieldPrice:
		return p.Price, true
	case query.FieldSize:
		return p.Size, true
	case query.FieldBedrooms:
		return p.Bedrooms, true
	case query.FieldBathrooms:
		return p.Bathrooms, true
	case query.FieldAmenities:
		return p.Amenities, true
	case query.FieldHighROI:
		return p.HighROI, true
	case query.FieldVerified:
		return p.Verified, true
	case query.FieldAgentID:
		if p.AgentID.IsZero() {
			return nil, false
		}
		return p.AgentID.Hex(), true
	case query.FieldCreatedAt:
		return p.CreatedAt, true
	case query.FieldUpdatedAt:
		return p.UpdatedAt, true
	default:
		return nil, false
	}
}

// AgentValue expone los campos consultables de un agente
func AgentValue(a domain.Agent, field query.Field) (interface{}, bool) {
	switch field {
	case query.FieldID:
		return a.ID.Hex(), true
	case query.FieldName:
		return a.Name, true
	case query.FieldEmail:
		return a.Email, true
	case query.FieldCity:
		return a.City, true
	case query.FieldBio:
		return a.Bio, true
	case query.FieldSpecialization:
		return a.Specialization, true
	case query.FieldVerified:
		return a.Verified, true
	case query.FieldListingsCount:
		return a.ListingsCount, true
	case query.FieldCreatedAt:
		return a.CreatedAt, true
	case query.FieldUpdatedAt:
		return a.UpdatedAt, true
	default:
		return nil, false
	}
}

// MemoryPropertyStore es un PropertyRepository en memoria
type MemoryPropertyStore struct {
	*MemoryStore[domain.Property]
}

// NewMemoryPropertyStore crea un store con las propiedades dadas
func NewMemoryPropertyStore(properties ...domain.Property) MemoryPropertyStore {
	return MemoryPropertyStore{NewMemoryStore[domain.Property](PropertyValue, properties...)}
}

// Find devuelve los resúmenes de la página pedida
func (s MemoryPropertyStore) Find(ctx context.Context, plan query.Plan) ([]domain.PropertySummary, error) {
	rows, err := s.MemoryStore.Find(ctx, plan)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PropertySummary, len(rows))
	for i, p := range rows {
		out[i] = p.Summary()
	}
	return out, nil
}

func byPropertyID(id primitive.ObjectID) func(domain.Property) bool {
	return func(p domain.Property) bool { return p.ID == id }
}

// GetByID devuelve una copia de la propiedad guardada
func (s MemoryPropertyStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	if err := s.readErr(ctx); err != nil {
		return nil, err
	}
	p, ok := s.First(byPropertyID(id))
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Create guarda la propiedad y le asigna un ID si no tiene
func (s MemoryPropertyStore) Create(ctx context.Context, property *domain.Property) error {
	if err := s.readErr(ctx); err != nil {
		return err
	}
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	s.Put(*property)
	return nil
}

// Update reemplaza la propiedad guardada con el mismo ID
func (s MemoryPropertyStore) Update(ctx context.Context, property *domain.Property) error {
	if err := s.readErr(ctx); err != nil {
		return err
	}
	if !s.Replace(byPropertyID(property.ID), *property) {
		return ErrNotFound
	}
	return nil
}

// Delete elimina la propiedad con ese id
func (s MemoryPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.readErr(ctx); err != nil {
		return err
	}
	if !s.Remove(byPropertyID(id)) {
		return ErrNotFound
	}
	return nil
}
