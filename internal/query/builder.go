package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec is the normalized form of one list request. It is a pure value:
// building SQL from it has no side effects, takes no locks, and never
// errors on unresolvable tokens — those degrade silently so a client
// typo narrows nothing instead of failing the request.
type Spec struct {
	Entity *Entity
	Joins  []Join

	Search       string
	SearchFields []string
	// AutoSearchText widens an empty SearchFields to every text column
	// of the base entity and all joined entities.
	AutoSearchText bool

	Filters []Filter

	SortBy      string
	SortOrder   string // "asc" or "desc"; anything else means desc
	DefaultSort string

	IncludeDeleted bool

	// Page and PerPage are applied only when both are >= 1.
	Page    int
	PerPage int
}

// SelectColumn is one entry of the generated select list, in order.
// Alias is set for columns contributed by an aliased join.
type SelectColumn struct {
	Expr  string
	Alias string
}

type argBuilder struct {
	args []any
}

func (b *argBuilder) add(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *argBuilder) addAll(items []any) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = b.add(v)
	}
	return strings.Join(parts, ", ")
}

func stringify(v any) string {
	return fmt.Sprint(v)
}

// Columns returns the ordered select list: every base column
// qualified by table, then for each aliased join its columns
// (restricted to LoadOnly when given) aliased "alias__column".
// Repositories scan result rows positionally against this list.
func (s Spec) Columns() []SelectColumn {
	var out []SelectColumn
	for _, c := range s.Entity.Columns {
		out = append(out, SelectColumn{Expr: s.Entity.Table + "." + c.Name})
	}
	for _, j := range s.Joins {
		if j.Alias == "" {
			continue
		}
		for _, c := range j.Entity.Columns {
			if len(j.LoadOnly) > 0 && !contains(j.LoadOnly, c.Name) {
				continue
			}
			out = append(out, SelectColumn{
				Expr:  j.Entity.Table + "." + c.Name,
				Alias: j.Alias + "__" + c.Name,
			})
		}
	}
	return out
}

// SelectSQL compiles the full query: soft-delete exclusion, joins,
// search, filters, sort, and the pagination window.
func (s Spec) SelectSQL() (string, []any) {
	b := &argBuilder{}
	var sb strings.Builder

	sb.WriteString("SELECT ")
	cols := s.Columns()
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.Expr)
		if c.Alias != "" {
			sb.WriteString(" AS ")
			sb.WriteString(c.Alias)
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(s.Entity.Table)
	s.writeJoins(&sb)
	s.writeWhere(&sb, b)

	if order := s.orderBy(); order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}

	if s.Page >= 1 && s.PerPage >= 1 {
		fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", s.PerPage, (s.Page-1)*s.PerPage)
	}

	return sb.String(), b.args
}

// CountSQL compiles the matching-row count for the same spec. Sort and
// pagination are deliberately absent: ordering is irrelevant to a
// count and the window must not narrow it.
func (s Spec) CountSQL() (string, []any) {
	b := &argBuilder{}
	var sb strings.Builder

	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(s.Entity.Table)
	s.writeJoins(&sb)
	s.writeWhere(&sb, b)

	return sb.String(), b.args
}

func (s Spec) writeJoins(sb *strings.Builder) {
	for _, j := range s.Joins {
		if j.Outer {
			sb.WriteString(" LEFT JOIN ")
		} else {
			sb.WriteString(" JOIN ")
		}
		sb.WriteString(j.Entity.Table)
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}
}

func (s Spec) writeWhere(sb *strings.Builder, b *argBuilder) {
	var conds []string

	if !s.IncludeDeleted {
		if s.Entity.SoftDelete {
			conds = append(conds, s.Entity.Table+".deleted_at IS NULL")
		}
		for _, j := range s.Joins {
			if j.Entity.SoftDelete {
				// An absent outer-joined row is all NULLs and passes
				// this check, so base rows without a match survive.
				conds = append(conds, j.Entity.Table+".deleted_at IS NULL")
			}
		}
	}

	if search := s.searchCondition(b); search != "" {
		conds = append(conds, search)
	}

	r := newResolver(s.Entity, s.Joins)
	for _, f := range s.Filters {
		col, _, ok := r.resolve(f.Key)
		if !ok {
			continue
		}
		if pred, ok := f.Op.predicate(col, f.Value, b); ok && pred != "" {
			conds = append(conds, pred)
		}
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
}

// searchCondition ORs a case-insensitive substring match over every
// resolvable search field. An empty or fully unresolvable field list
// contributes no restriction: a search that matches nothing resolvable
// must not turn into match-none.
func (s Spec) searchCondition(b *argBuilder) string {
	if s.Search == "" {
		return ""
	}

	fields := s.SearchFields
	if len(fields) == 0 && s.AutoSearchText {
		fields = append(fields, s.Entity.TextColumns()...)
		for _, j := range s.Joins {
			for _, name := range j.Entity.TextColumns() {
				fields = append(fields, j.Entity.Name+"."+name)
			}
		}
	}
	if len(fields) == 0 {
		return ""
	}

	r := newResolver(s.Entity, s.Joins)
	pattern := "%" + s.Search + "%"
	var parts []string
	for _, token := range fields {
		col, meta, ok := r.resolve(token)
		if !ok {
			continue
		}
		if !meta.Text {
			col = "CAST(" + col + " AS TEXT)"
		}
		parts = append(parts, col+" ILIKE "+b.add(pattern))
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (s Spec) orderBy() string {
	r := newResolver(s.Entity, s.Joins)

	col, _, ok := r.resolve(s.SortBy)
	if !ok && s.DefaultSort != "" {
		// Fallback resolves against the base entity only.
		if _, exists := s.Entity.Column(s.DefaultSort); exists {
			col, ok = s.Entity.Table+"."+s.DefaultSort, true
		}
	}
	if !ok {
		return ""
	}

	if strings.EqualFold(s.SortOrder, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
