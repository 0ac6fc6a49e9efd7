package view

import (
	"math"
	"sort"
	"strings"

	"github.com/five82/tabula/internal/table"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// Direction is the sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Arrow returns a glyph for header rendering.
func (d Direction) Arrow() string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// Params are the presentation parameters. The zero value shows the first
// page of unsorted, unfiltered rows.
type Params struct {
	Search  string
	SortKey string
	SortDir Direction
	Page    int
}

// Sorted reports whether a sort key is active.
func (p Params) Sorted() bool { return p.SortKey != "" }

// ToggleSort selects key ascending, or flips the direction when key is
// already the sort key.
func (p Params) ToggleSort(key string) Params {
	if p.SortKey == key {
		if p.SortDir == Asc {
			p.SortDir = Desc
		} else {
			p.SortDir = Asc
		}
		return p
	}
	p.SortKey = key
	p.SortDir = Asc
	return p
}

// Result is the derived page.
type Result struct {
	// Rows is the current page.
	Rows []table.Row
	// Total counts rows after filtering, before pagination.
	Total int
	// Columns are the visible columns in declared order.
	Columns []table.Column
	Page    int
}

// Pages returns the number of pages for the filtered total.
func (r Result) Pages() int { return PageCount(r.Total) }

// Compute derives the visible page: filter, then sort, then paginate.
// Inputs are not modified.
func Compute(cols []table.Column, rows []table.Row, p Params) Result {
	filtered := Filter(rows, p.Search)
	if p.Sorted() {
		filtered = Sort(filtered, p.SortKey, p.SortDir)
	}
	return Result{
		Rows:    Paginate(filtered, p.Page),
		Total:   len(filtered),
		Columns: table.VisibleColumns(cols),
		Page:    p.Page,
	}
}

// Filter keeps rows where any field value contains query, ignoring case
// and surrounding whitespace. An empty query keeps every row. Identifiers
// are not searched.
func Filter(rows []table.Row, query string) []table.Row {
	q := normalizeQuery(query)
	if q == "" {
		return rows
	}
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether row satisfies query.
func Matches(row table.Row, query string) bool {
	q := normalizeQuery(query)
	return q == "" || matches(row, q)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matches(row table.Row, q string) bool {
	found := false
	row.Fields.Each(func(_ string, v table.Value) {
		if !found && strings.Contains(strings.ToLower(v.String()), q) {
			found = true
		}
	})
	return found
}

// Sort returns a stably sorted copy of rows ordered by the value under key.
// Rows lacking the key sort as empty.
func Sort(rows []table.Row, key string, dir Direction) []table.Row {
	out := make([]table.Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i].Get(key), out[j].Get(key))
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// rank orders kinds: empty, numbers, booleans, then non-empty text.
func rank(v table.Value) int {
	switch v.Kind() {
	case table.KindNumber:
		return 1
	case table.KindBool:
		return 2
	case table.KindString:
		if v.IsEmpty() {
			return 0
		}
		return 3
	default:
		return 0
	}
}

// Compare is a total order over values: -1, 0 or 1.
func Compare(a, b table.Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch ra {
	case 1:
		x, _ := a.Number()
		y, _ := b.Number()
		xn, yn := math.IsNaN(x), math.IsNaN(y)
		switch {
		case xn && yn:
			return 0
		case xn:
			return -1
		case yn:
			return 1
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case 2:
		x, _ := a.Boolean()
		y, _ := b.Boolean()
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case 3:
		return strings.Compare(a.String(), b.String())
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate returns the zero-based page of rows. Out-of-range pages are empty.
func Paginate(rows []table.Row, page int) []table.Row {
	if page < 0 || page >= PageCount(len(rows)) {
		return []table.Row{}
	}
	start := page * PageSize
	if start >= len(rows) {
		return []table.Row{}
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns the number of pages needed for total rows, at least one.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage limits page to the valid range for total rows.
func ClampPage(page, total int) int {
	last := PageCount(total) - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	return page
}
