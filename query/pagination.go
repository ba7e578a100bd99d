package query

import "strconv"

const (
	// MaxLimit es el tamaño de página máximo de cualquier endpoint
	MaxLimit = 100
	// maxPage mantiene el cálculo de skip lejos del overflow
	maxPage = 1_000_000_000
)

// Pagination es una ventana de paginación ya validada
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parsea page y limit. Un page inválido pasa a 1 y un limit vacío
// o inválido pasa a defaultLimit; los números fuera de rango se ajustan al
// límite.
func NewPagination(rawPage, rawLimit string, defaultLimit int) Pagination {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = defaultLimit
	}
	return Pagination{Page: clampPage(page), Limit: clampLimit(limit)}
}

// Skip es la cantidad de filas que se saltean antes de la ventana
func (p Pagination) Skip() int64 {
	return int64(clampPage(p.Page)-1) * int64(clampLimit(p.Limit))
}

// PageInfo es la metadata de una página de resultados
type PageInfo struct {
	Page       int
	Limit      int
	Skip       int64
	TotalCount int64
	TotalPages int
	HasMore    bool
}

// Paginate ajusta page y limit y calcula la metadata para total. Una página
// después de la última es válida y simplemente viene vacía.
func Paginate(page, limit int, total int64) PageInfo {
	page = clampPage(page)
	limit = clampLimit(limit)
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageInfo{
		Page:       page,
		Limit:      limit,
		Skip:       int64(page-1) * int64(limit),
		TotalCount: total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
