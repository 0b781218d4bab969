package query

// The builder never reflects over structs: every entity that can be
// listed, filtered, or joined is described once by an Entity and field
// tokens are resolved by plain lookups against these descriptors.

// Column describes one selectable column of an entity.
type Column struct {
	Name     string
	Text     bool // string-typed; participates in auto search
	Nullable bool
}

// Entity is the static descriptor for one relational entity.
type Entity struct {
	// Name is the type name accepted as a qualifier in field tokens,
	// e.g. "User" in "User.email".
	Name       string
	Table      string
	SoftDelete bool // has a deleted_at timestamp
	Columns    []Column

	byName map[string]Column
}

// NewEntity builds the descriptor and its column index.
func NewEntity(name, table string, softDelete bool, cols []Column) *Entity {
	e := &Entity{
		Name:       name,
		Table:      table,
		SoftDelete: softDelete,
		Columns:    cols,
		byName:     make(map[string]Column, len(cols)),
	}
	for _, c := range cols {
		e.byName[c.Name] = c
	}
	return e
}

// Column looks up a column by name.
func (e *Entity) Column(name string) (Column, bool) {
	c, ok := e.byName[name]
	return c, ok
}

// TextColumns returns the names of all string-typed columns, in
// declaration order.
func (e *Entity) TextColumns() []string {
	var out []string
	for _, c := range e.Columns {
		if c.Text {
			out = append(out, c.Name)
		}
	}
	return out
}

// Join declares one join applied by a Spec, in declaration order.
type Join struct {
	Entity *Entity
	// On is the raw join predicate, e.g. "businesses.user_id = users.id".
	// Join conditions are declared by repositories, never built from
	// request input.
	On string
	// Alias registers the join under a relationship name for field
	// tokens and adds its columns to the select list so related rows
	// come back in the same round trip.
	Alias string
	// Outer keeps base rows without a match (LEFT JOIN). Default is
	// INNER.
	Outer bool
	// LoadOnly restricts which joined columns are selected when Alias
	// is set; used to keep sensitive columns out of joined payloads.
	LoadOnly []string
}

type resolver struct {
	base    *Entity
	joins   []Join
	byType  map[string]*Entity
	byAlias map[string]*Entity
}

func newResolver(base *Entity, joins []Join) resolver {
	r := resolver{
		base:    base,
		joins:   joins,
		byType:  make(map[string]*Entity, len(joins)),
		byAlias: make(map[string]*Entity, len(joins)),
	}
	for _, j := range joins {
		r.byType[j.Entity.Name] = j.Entity
		if j.Alias != "" {
			r.byAlias[j.Alias] = j.Entity
		}
	}
	return r
}

// resolve maps a field token to a qualified "table.column" reference.
// Qualified tokens ("User.email", "user.email") match the named join;
// bare tokens match the base entity first, then joins in declaration
// order. Unresolvable tokens report ok=false and are skipped by
// callers.
func (r resolver) resolve(token string) (string, Column, bool) {
	if token == "" {
		return "", Column{}, false
	}

	if qualifier, name, found := cutToken(token); found {
		ent := r.byType[qualifier]
		if ent == nil {
			ent = r.byAlias[qualifier]
		}
		if ent == nil {
			return "", Column{}, false
		}
		if col, ok := ent.Column(name); ok {
			return ent.Table + "." + name, col, true
		}
		return "", Column{}, false
	}

	if col, ok := r.base.Column(token); ok {
		return r.base.Table + "." + token, col, true
	}
	for _, j := range r.joins {
		if col, ok := j.Entity.Column(token); ok {
			return j.Entity.Table + "." + token, col, true
		}
	}
	return "", Column{}, false
}

func cutToken(token string) (qualifier, column string, found bool) {
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			return token[:i], token[i+1:], true
		}
	}
	return "", token, false
}
