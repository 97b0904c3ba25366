package service

// Pagination is the page descriptor attached to every list payload
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages = ceil(total/limit)
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// NewPaginationAtLeastOne is NewPagination with a floor of one page, used
// by the explore and public-view endpoints
func NewPaginationAtLeastOne(page, limit int, total int64) Pagination {
	p := NewPagination(page, limit, total)
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	return p
}

// normalizePage clamps page and limit to sane values
func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}
