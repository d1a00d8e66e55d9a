package console

import (
	"slices"
	"strings"
)

// PageSizeOptions are the page sizes the grid offers.
var PageSizeOptions = []int{5, 10, 25, 50, 100}

// DefaultPageSize is used when no valid page size is requested.
const DefaultPageSize = 25

// Column is one grid column. Value renders the cell text the quick filter
// searches; columns with Filterable unset are skipped by the filter.
type Column[T any] struct {
	Field      string         `json:"field"`
	Header     string         `json:"headerName"`
	Filterable bool           `json:"filterable"`
	Value      func(T) string `json:"-"`
}

// Page is one rendered slice of the grid.
type Page[T any] struct {
	Rows     []T      `json:"rows"`
	Columns  []string `json:"columns"`
	Query    string   `json:"query"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Pages    int      `json:"pages"`
	Total    int      `json:"total"`
	Matched  int      `json:"matched"`
}

// Grid filters and pages a list without touching it.
type Grid[T any] struct {
	columns         []Column[T]
	defaultPageSize int
}

// NewGrid builds a grid over columns. An unsupported defaultPageSize falls
// back to DefaultPageSize.
func NewGrid[T any](columns []Column[T], defaultPageSize int) *Grid[T] {
	if !slices.Contains(PageSizeOptions, defaultPageSize) {
		defaultPageSize = DefaultPageSize
	}
	return &Grid[T]{columns: columns, defaultPageSize: defaultPageSize}
}

// Columns returns the column definitions.
func (g *Grid[T]) Columns() []Column[T] { return g.columns }

// Filter returns the rows matching query. The query is split on whitespace
// and every term must appear, case-insensitively, in at least one
// filterable column of the row. A blank query matches everything.
func (g *Grid[T]) Filter(items []T, query string) []T {
	terms := strings.Fields(strings.ToLower(query))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if g.matches(item, terms) {
			out = append(out, item)
		}
	}
	return out
}

// View filters items and returns the requested zero-based page. Pages past
// the end clamp to the last page.
func (g *Grid[T]) View(items []T, query string, page, pageSize int) Page[T] {
	if !slices.Contains(PageSizeOptions, pageSize) {
		pageSize = g.defaultPageSize
	}
	matched := g.Filter(items, query)

	pages := (len(matched) + pageSize - 1) / pageSize
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}
	start := min(page*pageSize, len(matched))
	end := min(start+pageSize, len(matched))

	columns := make([]string, 0, len(g.columns))
	for _, col := range g.columns {
		columns = append(columns, col.Field)
	}
	return Page[T]{
		Rows:     matched[start:end],
		Columns:  columns,
		Query:    query,
		Page:     page,
		PageSize: pageSize,
		Pages:    pages,
		Total:    len(items),
		Matched:  len(matched),
	}
}

func (g *Grid[T]) matches(item T, terms []string) bool {
	for _, term := range terms {
		found := false
		for _, col := range g.columns {
			if !col.Filterable || col.Value == nil {
				continue
			}
			if strings.Contains(strings.ToLower(col.Value(item)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
