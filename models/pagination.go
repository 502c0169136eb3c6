package models

import "fmt"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pageable carries the caller's paging and sorting choices. Values are
// normalized before use, so handlers can pass whatever was parsed from the
// query string.
type Pageable struct {
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

// Normalize clamps page to >= 0 and size into [1, MaxPageSize], resolves the
// sort field against the entity's sortable column map (falling back to
// defaultSort when unknown) and forces order to asc/desc.
func (p Pageable) Normalize(sortable map[string]string, defaultSort string) Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}

	if col, ok := sortable[p.Sort]; ok {
		p.Sort = col
	} else {
		p.Sort = defaultSort
	}

	if p.Order != "desc" {
		p.Order = "asc"
	}
	return p
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// OrderClause returns the ORDER BY expression for a normalized Pageable.
// Only whitelisted column names ever reach this point.
func (p Pageable) OrderClause() string {
	return fmt.Sprintf("%s %s", p.Sort, p.Order)
}

// Page is the result envelope for paginated queries.
type Page[T any] struct {
	Items         []T    `json:"items"`
	TotalElements int64  `json:"total_elements"`
	TotalPages    int    `json:"total_pages"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	Sort          string `json:"sort"`
	Order         string `json:"order"`
}

func NewPage[T any](items []T, total int64, p Pageable) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          p.Page,
		Size:          p.Size,
		Sort:          p.Sort,
		Order:         p.Order,
	}
}
