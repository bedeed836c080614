// Package pagination computes page metadata for limit/offset listings.
package pagination

const (
	DefaultDocumentLimit = 5   // Default page size for document listings
	DefaultUserLimit     = 10  // Default page size for user listings
	MaxLimit             = 100 // Hard cap on any requested page size
)

// Result is the page metadata returned alongside every listing.
type Result struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	PageSize    int `json:"pageSize"`
}

// Paginate computes page metadata for a limit/offset window over count rows.
//
// limit and offset are clamped to count. On the last page with a non-zero
// offset the page size shrinks to count%offset, or count-offset when that
// remainder is zero; existing clients depend on this exact arithmetic.
func Paginate(limit, offset, count int) Result {
	limit, offset, count = max(limit, 0), max(offset, 0), max(count, 0)
	limit = min(limit, count)
	offset = min(offset, count)

	res := Result{TotalCount: count, CurrentPage: 1}
	if limit == 0 {
		return res
	}

	res.CurrentPage = offset/limit + 1
	res.PageCount = (count + limit - 1) / limit
	// Keeps currentPage within [1, pageCount] when offset lands exactly on count.
	if res.CurrentPage > res.PageCount {
		res.CurrentPage = res.PageCount
	}
	res.PageSize = limit

	if res.CurrentPage == res.PageCount && offset != 0 {
		if rem := count % offset; rem == 0 {
			res.PageSize = count - offset
		} else {
			res.PageSize = rem
		}
	}
	return res
}

// Params is a normalized limit/offset window for a store query.
type Params struct {
	Limit  int
	Offset int
}

// NewParams applies the endpoint default for a non-positive limit, caps the
// limit at MaxLimit and floors the offset at zero.
func NewParams(limit, offset, defaultLimit int) Params {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Limit: limit, Offset: max(offset, 0)}
}
