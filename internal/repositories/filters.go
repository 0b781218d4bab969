package repositories

import (
	"backoffice/internal/domain"
	"backoffice/internal/query"
)

// toFilters converts boundary filter inputs to query predicates.
// Operator parsing is permissive: unknown names degrade to equal.
func toFilters(in []domain.FilterInput) []query.Filter {
	if len(in) == 0 {
		return nil
	}
	out := make([]query.Filter, 0, len(in))
	for _, f := range in {
		out = append(out, query.Filter{
			Key:   f.Key,
			Op:    query.ParseOp(f.Operator),
			Value: f.Value,
		})
	}
	return out
}
