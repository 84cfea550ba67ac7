package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and rejects out-of-range values.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Page < 1 {
		return p, Validation("page must be at least 1")
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return p, Validation("limit must be between 1 and %d", MaxPageLimit)
	}
	return p, nil
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
