package domain

// FilterInput is one structured filter predicate as it arrives at the
// HTTP boundary (decoded from the filters JSON string).
type FilterInput struct {
	Key      string `json:"key"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// ListParams carries the generic list-request parameters shared by
// every list endpoint. Page/PerPage of 0 mean "unpaginated".
type ListParams struct {
	Search    string
	Filters   []FilterInput
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// Paginated returns true only when both window params are set; a lone
// page or per_page degrades to the full result set.
func (p ListParams) Paginated() bool {
	return p.Page >= 1 && p.PerPage >= 1
}

// RequestContext carries the authenticated caller.
type RequestContext struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
