package query

import "fmt"

// Plan es una query de listado compilada, independiente del store
type Plan struct {
	Endpoint   string
	Filter     Filter
	Sort       SortSpec
	Pagination Pagination
}

// Compile pasa params por el normalizador, el resolvedor de orden y la
// paginación
func (e Endpoint) Compile(params Params, scope Scope) (Plan, error) {
	filter, err := e.Normalize(params, scope)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Endpoint:   e.Name,
		Filter:     filter,
		Sort:       e.ResolveSort(params.Get("sortBy", "sort"), params.Get("sortOrder", "order")),
		Pagination: NewPagination(params.Get("page"), params.Get("limit"), e.DefaultLimit),
	}, nil
}

// Key es una descripción canónica del plan: planes iguales tienen claves
// iguales
func (p Plan) Key() string {
	return fmt.Sprintf("%s|%s|%s|p%d|l%d", p.Endpoint, p.Filter, p.Sort, p.Pagination.Page, p.Pagination.Limit)
}

// Result es una página de filas con su metadata
type Result[T any] struct {
	Rows []T
	PageInfo
}

// NewResult junta las filas con la metadata de paginación para total. Rows
// nunca es nil.
func NewResult[T any](rows []T, total int64, page Pagination) Result[T] {
	if rows == nil {
		rows = []T{}
	}
	return Result[T]{
		Rows:     rows,
		PageInfo: Paginate(page.Page, page.Limit, total),
	}
}
