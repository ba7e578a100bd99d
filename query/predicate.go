package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifica la variante de un Predicate
type Kind int

const (
	KindExact Kind = iota + 1
	KindRange
	KindSetContainsAll
	KindTextOr
	KindFlag
	KindReference
)

// Predicate es una condición de un Filter. Los tipos concretos tienen campos
// privados: solo Endpoint.Normalize los construye.
type Predicate interface {
	Kind() Kind
	String() string
	predicate()
}

// ExactMatch es una igualdad sobre un campo, sin distinguir mayúsculas
type ExactMatch struct {
	field Field
	value string
}

func (p ExactMatch) Kind() Kind    { return KindExact }
func (p ExactMatch) Field() Field  { return p.field }
func (p ExactMatch) Value() string { return p.value }
func (ExactMatch) predicate()      {}

func (p ExactMatch) String() string {
	return fmt.Sprintf("eq(%s=%q)", p.field, strings.ToLower(p.value))
}

// Range acota un campo numérico; cualquiera de las cotas puede faltar. Las
// cotas son inclusivas y se guardan tal como se parsearon, aunque min > max.
type Range struct {
	field Field
	min   *float64
	max   *float64
}

func (p Range) Kind() Kind   { return KindRange }
func (p Range) Field() Field { return p.field }
func (Range) predicate()     {}

// Min devuelve la cota inferior y si está definida
func (p Range) Min() (float64, bool) {
	if p.min == nil {
		return 0, false
	}
	return *p.min, true
}

// Max devuelve la cota superior y si está definida
func (p Range) Max() (float64, bool) {
	if p.max == nil {
		return 0, false
	}
	return *p.max, true
}

func (p Range) String() string {
	lo, hi := "*", "*"
	if v, ok := p.Min(); ok {
		lo = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := p.Max(); ok {
		hi = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("range(%s=[%s,%s])", p.field, lo, hi)
}

// SetContainsAll exige que todos los valores estén en un campo array
type SetContainsAll struct {
	field  Field
	values []string
}

func (p SetContainsAll) Kind() Kind   { return KindSetContainsAll }
func (p SetContainsAll) Field() Field { return p.field }
func (SetContainsAll) predicate()     {}

// Values devuelve una copia de los valores requeridos
func (p SetContainsAll) Values() []string {
	out := make([]string, len(p.values))
	copy(out, p.values)
	return out
}

func (p SetContainsAll) String() string {
	quoted := make([]string, len(p.values))
	for i, v := range p.values {
		quoted[i] = strconv.Quote(v)
	}
	return fmt.Sprintf("all(%s=%s)", p.field, strings.Join(quoted, ","))
}

// TextOr se cumple cuando el término aparece, sin distinguir mayúsculas, en al
// menos uno de los campos. Varios TextOr en un Filter se combinan con AND.
type TextOr struct {
	fields []Field
	term   string
}

func (p TextOr) Kind() Kind   { return KindTextOr }
func (p TextOr) Term() string { return p.term }
func (TextOr) predicate()     {}

// Fields devuelve una copia de los campos de búsqueda
func (p TextOr) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

func (p TextOr) String() string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("text(%s~%q)", strings.Join(names, "|"), p.term)
}

// Flag es una igualdad booleana
type Flag struct {
	field Field
	value bool
}

func (p Flag) Kind() Kind   { return KindFlag }
func (p Flag) Field() Field { return p.field }
func (p Flag) Value() bool  { return p.value }
func (Flag) predicate()     {}

func (p Flag) String() string {
	return fmt.Sprintf("flag(%s=%t)", p.field, p.value)
}

// Reference es una igualdad sobre un ObjectID. El id es un hex de 24 caracteres
// ya validado.
type Reference struct {
	field Field
	id    string
}

func (p Reference) Kind() Kind   { return KindReference }
func (p Reference) Field() Field { return p.field }
func (p Reference) ID() string   { return p.id }
func (Reference) predicate()     {}

func (p Reference) String() string {
	return fmt.Sprintf("ref(%s=%q)", p.field, p.id)
}

// Filter es una conjunción de predicados
type Filter struct {
	predicates []Predicate
}

// Predicates devuelve los predicados en el orden en que los generó el
// normalizador
func (f Filter) Predicates() []Predicate {
	out := make([]Predicate, len(f.predicates))
	copy(out, f.predicates)
	return out
}

// Len devuelve la cantidad de predicados
func (f Filter) Len() int {
	return len(f.predicates)
}

// String arma una forma canónica para claves de cache y logs. Todo valor que
// manda el usuario va entre comillas, así ningún valor puede verse como otro
// predicado.
func (f Filter) String() string {
	parts := make([]string, len(f.predicates))
	for i, p := range f.predicates {
		parts[i] = p.String()
	}
	return strings.Join(parts, "&")
}

func (f *Filter) add(p Predicate) {
	f.predicates = append(f.predicates, p)
}
