package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                 string
		limit, offset, count int
		want                 Result
	}{
		{"second of two full pages", 2, 2, 4, Result{TotalCount: 4, CurrentPage: 2, PageCount: 2, PageSize: 2}},
		{"first page", 5, 0, 12, Result{TotalCount: 12, CurrentPage: 1, PageCount: 3, PageSize: 5}},
		{"middle page", 5, 5, 12, Result{TotalCount: 12, CurrentPage: 2, PageCount: 3, PageSize: 5}},
		{"partial last page", 5, 10, 12, Result{TotalCount: 12, CurrentPage: 3, PageCount: 3, PageSize: 2}},
		{"limit clamped to count", 10, 0, 3, Result{TotalCount: 3, CurrentPage: 1, PageCount: 1, PageSize: 3}},
		// count%offset rather than count-offset: 8%3 == 2 although 5 rows remain.
		{"last page remainder quirk", 10, 3, 8, Result{TotalCount: 8, CurrentPage: 1, PageCount: 1, PageSize: 2}},
		// currentPage is held at pageCount instead of running one past it.
		{"offset at end of full pages", 2, 4, 4, Result{TotalCount: 4, CurrentPage: 2, PageCount: 2, PageSize: 0}},
		{"offset past end", 2, 10, 4, Result{TotalCount: 4, CurrentPage: 2, PageCount: 2, PageSize: 0}},
		{"empty result", 5, 0, 0, Result{TotalCount: 0, CurrentPage: 1, PageCount: 0, PageSize: 0}},
		{"empty result with offset", 5, 3, 0, Result{TotalCount: 0, CurrentPage: 1, PageCount: 0, PageSize: 0}},
		{"zero limit", 0, 0, 5, Result{TotalCount: 5, CurrentPage: 1, PageCount: 0, PageSize: 0}},
		{"negative inputs", -3, -1, 4, Result{TotalCount: 4, CurrentPage: 1, PageCount: 0, PageSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.limit, tt.offset, tt.count))
		})
	}
}

func TestPaginatePageBounds(t *testing.T) {
	for count := 1; count <= 15; count++ {
		for limit := 1; limit <= 12; limit++ {
			for offset := 0; offset <= 16; offset++ {
				res := Paginate(limit, offset, count)
				clamped := min(limit, count)
				wantPages := (count + clamped - 1) / clamped

				assert.Equal(t, wantPages, res.PageCount, "limit=%d offset=%d count=%d", limit, offset, count)
				assert.GreaterOrEqual(t, res.CurrentPage, 1, "limit=%d offset=%d count=%d", limit, offset, count)
				assert.LessOrEqual(t, res.CurrentPage, res.PageCount, "limit=%d offset=%d count=%d", limit, offset, count)
				assert.Equal(t, count, res.TotalCount)
			}
		}
	}
}

func TestNewParams(t *testing.T) {
	assert.Equal(t, Params{Limit: 5, Offset: 0}, NewParams(0, 0, DefaultDocumentLimit))
	assert.Equal(t, Params{Limit: 10, Offset: 0}, NewParams(-4, -2, DefaultUserLimit))
	assert.Equal(t, Params{Limit: 3, Offset: 6}, NewParams(3, 6, DefaultDocumentLimit))
	assert.Equal(t, Params{Limit: MaxLimit, Offset: 1}, NewParams(5000, 1, DefaultUserLimit))
}
