package service

// DefaultPageSize is the fixed page size used by every list view.
const DefaultPageSize = 10

// Page is one slice of a record sequence plus navigation bounds.
type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

// Paginate slices records into the requested page. A non-positive
// pageSize falls back to DefaultPageSize. The page number is clamped
// into [1, max(1, totalPages)] here rather than trusting call sites to
// do it.
func Paginate[T any](records []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(records)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       records[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  total,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
}
