package paginate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		requested string
		want      Window
	}{
		{name: "first page by default", total: 13, requested: "", want: Window{Number: 1, TotalPages: 2, Total: 13, Offset: 0, Limit: 10}},
		{name: "second page", total: 13, requested: "2", want: Window{Number: 2, TotalPages: 2, Total: 13, Offset: 10, Limit: 3}},
		{name: "beyond last clamps", total: 13, requested: "7", want: Window{Number: 2, TotalPages: 2, Total: 13, Offset: 10, Limit: 3}},
		{name: "zero clamps to first", total: 13, requested: "0", want: Window{Number: 1, TotalPages: 2, Total: 13, Offset: 0, Limit: 10}},
		{name: "negative clamps to first", total: 13, requested: "-4", want: Window{Number: 1, TotalPages: 2, Total: 13, Offset: 0, Limit: 10}},
		{name: "garbage is first", total: 13, requested: "abc", want: Window{Number: 1, TotalPages: 2, Total: 13, Offset: 0, Limit: 10}},
		{name: "empty collection has one page", total: 0, requested: "3", want: Window{Number: 1, TotalPages: 1, Total: 0, Offset: 0, Limit: 0}},
		{name: "exact multiple", total: 20, requested: "2", want: Window{Number: 2, TotalPages: 2, Total: 20, Offset: 10, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(tt.total, tt.requested, 10))
		})
	}
}

// Page k holds min(P, max(0, N-(k-1)*P)) items for every valid k
func TestLocate_PageSizes(t *testing.T) {
	const perPage = 10
	for n := 0; n <= 35; n++ {
		w := Locate(int64(n), "1", perPage)
		for k := 1; k <= w.TotalPages; k++ {
			want := n - (k-1)*perPage
			if want > perPage {
				want = perPage
			}
			if want < 0 {
				want = 0
			}
			got := Locate(int64(n), strconv.Itoa(k), perPage)
			assert.Equal(t, want, got.Limit, "n=%d k=%d", n, k)
		}
	}
}

// page cuts the window out of items the way the stores do with OFFSET/LIMIT
func page(items []int, requested string) Page[int] {
	w := Locate(int64(len(items)), requested, 10)
	return New(w, items[w.Offset:w.Offset+w.Limit])
}

func TestNew(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}
	first := page(items, "1")
	assert.Equal(t, 10, first.Len())
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, 2, first.NextNumber())

	second := page(items, "2")
	assert.Equal(t, []int{10, 11, 12}, second.Items)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PreviousNumber())
	assert.Equal(t, []int{1, 2}, second.Numbers())

	empty := New[int](Locate(0, "5", 10), nil)
	assert.Equal(t, 0, empty.Len())
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 1, empty.Number)
}
