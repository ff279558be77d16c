// Package paginate splits ordered collections into fixed-size, 1-based pages.
// Requested page numbers are never an error: anything unparsable means the
// first page and out-of-range numbers are clamped to the nearest valid page.
package paginate

import "strconv"

// Window describes where a page lies in a collection of Total items
type Window struct {
	Number     int
	TotalPages int
	Total      int64
	Offset     int
	Limit      int
}

// Locate computes the window for the requested page. There is always at
// least one (possibly empty) page.
func Locate(total int64, requested string, perPage int) Window {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	number, err := strconv.Atoi(requested)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	offset := (number - 1) * perPage
	limit := perPage
	if remaining := int(total) - offset; remaining < limit {
		limit = remaining
	}
	return Window{
		Number:     number,
		TotalPages: totalPages,
		Total:      total,
		Offset:     offset,
		Limit:      limit,
	}
}

type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// New wraps the items fetched for a window
func New[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		Total:       w.Total,
		HasNext:     w.Number < w.TotalPages,
		HasPrevious: w.Number > 1,
	}
}

func (p Page[T]) Len() int {
	return len(p.Items)
}

func (p Page[T]) NextNumber() int {
	if p.HasNext {
		return p.Number + 1
	}
	return p.Number
}

func (p Page[T]) PreviousNumber() int {
	if p.HasPrevious {
		return p.Number - 1
	}
	return p.Number
}

// Numbers lists every page number, used by the paginator links
func (p Page[T]) Numbers() []int {
	numbers := make([]int, p.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
