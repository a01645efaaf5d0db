package util

// Page normalizes query paging inputs into an offset/size pair. Page numbers
// start at 1; sizes are clamped to 1..100 with a default of 10.
func Page(page, limit int) (offset, size int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return (page - 1) * limit, limit
}

// Meta is the pagination envelope returned alongside item listings and
// search results.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
	NextNum int   `json:"next_num"`
	PrevNum int   `json:"prev_num"`
}

// NewMeta derives the envelope from a total row count and the normalized
// page/size that produced the current slice.
func NewMeta(total int64, page, perPage int) Meta {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	m := Meta{
		Total:   total,
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
	}
	if page > 1 {
		m.HasPrev = true
		m.PrevNum = page - 1
	}
	if page < pages {
		m.HasNext = true
		m.NextNum = page + 1
	}
	return m
}
