package query

import "reflect"

// Op is the closed set of filter operators. Adding an operator means
// adding a case to predicate below; the default branch only handles
// the zero-value guard.
type Op int

const (
	OpEqual Op = iota
	OpNotEqual
	OpContains
	OpStartsWith
	OpEndsWith
	OpGreaterThan
	OpGreaterOrEqual
	OpLessThan
	OpLessOrEqual
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull
)

// ParseOp maps the wire operator names to Op. Unknown and empty
// operators both degrade to equal, mirroring the list endpoints'
// permissive contract.
func ParseOp(s string) Op {
	switch s {
	case "equal", "":
		return OpEqual
	case "not_equal":
		return OpNotEqual
	case "like", "contains":
		return OpContains
	case "starts_with":
		return OpStartsWith
	case "ends_with":
		return OpEndsWith
	case "gt":
		return OpGreaterThan
	case "gte":
		return OpGreaterOrEqual
	case "lt":
		return OpLessThan
	case "lte":
		return OpLessOrEqual
	case "in":
		return OpIn
	case "not_in":
		return OpNotIn
	case "is_null":
		return OpIsNull
	case "is_not_null":
		return OpIsNotNull
	default:
		return OpEqual
	}
}

// Filter is one structured predicate against a resolved field.
type Filter struct {
	Key   string
	Op    Op
	Value any
}

// predicate renders the operator against a resolved column reference.
// ok=false means the filter is silently dropped (non-list value for
// in/not_in).
func (op Op) predicate(col string, value any, b *argBuilder) (string, bool) {
	switch op {
	case OpEqual:
		return col + " = " + b.add(value), true
	case OpNotEqual:
		return col + " <> " + b.add(value), true
	case OpContains:
		return col + " ILIKE " + b.add("%"+toPattern(value)+"%"), true
	case OpStartsWith:
		return col + " ILIKE " + b.add(toPattern(value)+"%"), true
	case OpEndsWith:
		return col + " ILIKE " + b.add("%"+toPattern(value)), true
	case OpGreaterThan:
		return col + " > " + b.add(value), true
	case OpGreaterOrEqual:
		return col + " >= " + b.add(value), true
	case OpLessThan:
		return col + " < " + b.add(value), true
	case OpLessOrEqual:
		return col + " <= " + b.add(value), true
	case OpIn:
		items, ok := asList(value)
		if !ok {
			return "", false
		}
		if len(items) == 0 {
			// IN over an empty list matches nothing.
			return "1 = 0", true
		}
		return col + " IN (" + b.addAll(items) + ")", true
	case OpNotIn:
		items, ok := asList(value)
		if !ok {
			return "", false
		}
		if len(items) == 0 {
			// NOT IN over an empty list excludes nothing.
			return "", false
		}
		return col + " NOT IN (" + b.addAll(items) + ")", true
	case OpIsNull:
		return col + " IS NULL", true
	case OpIsNotNull:
		return col + " IS NOT NULL", true
	default:
		return "", false
	}
}

func toPattern(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return stringify(value)
}

// asList accepts any slice kind: the JSON boundary produces []any,
// programmatic callers may pass typed slices.
func asList(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
