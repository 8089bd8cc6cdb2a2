package params

import "math"

// Pagination holds the page position of a listing and the metadata computed
// once the total is known.
//
//	/produtos?pagina=2&itens=24
//	→ New(2, 24) → Pagination{Limit:24, Page:2, Offset:24}
//	→ catalog returns the page + exact count
//	→ ComputeMeta(total) fills TotalPages, HasNext, HasPrev
type Pagination struct {
	Limit      int  `json:"limit"`  // items per page
	Offset     int  `json:"offset"` // first row of the page
	Page       int  `json:"page"`   // 1-based
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func New(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return Pagination{Limit: limit, Page: page, Offset: (page - 1) * limit}
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}
