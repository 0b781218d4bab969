package query

import (
	"reflect"
	"testing"
)

func TestParseOp(t *testing.T) {
	cases := map[string]Op{
		"equal":       OpEqual,
		"":            OpEqual,
		"not_equal":   OpNotEqual,
		"like":        OpContains,
		"contains":    OpContains,
		"starts_with": OpStartsWith,
		"ends_with":   OpEndsWith,
		"gt":          OpGreaterThan,
		"gte":         OpGreaterOrEqual,
		"lt":          OpLessThan,
		"lte":         OpLessOrEqual,
		"in":          OpIn,
		"not_in":      OpNotIn,
		"is_null":     OpIsNull,
		"is_not_null": OpIsNotNull,
		"explode":     OpEqual, // unknown degrades to equal
	}
	for raw, want := range cases {
		if got := ParseOp(raw); got != want {
			t.Errorf("ParseOp(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestPredicateTable(t *testing.T) {
	cases := []struct {
		name     string
		op       Op
		value    any
		wantSQL  string
		wantOK   bool
		wantArgs []any
	}{
		{"equal", OpEqual, 7, "t.c = $1", true, []any{7}},
		{"not_equal", OpNotEqual, 7, "t.c <> $1", true, []any{7}},
		{"contains", OpContains, "abc", "t.c ILIKE $1", true, []any{"%abc%"}},
		{"starts_with", OpStartsWith, "abc", "t.c ILIKE $1", true, []any{"abc%"}},
		{"ends_with", OpEndsWith, "abc", "t.c ILIKE $1", true, []any{"%abc"}},
		{"gt", OpGreaterThan, 1, "t.c > $1", true, []any{1}},
		{"gte", OpGreaterOrEqual, 1, "t.c >= $1", true, []any{1}},
		{"lt", OpLessThan, 1, "t.c < $1", true, []any{1}},
		{"lte", OpLessOrEqual, 1, "t.c <= $1", true, []any{1}},
		{"in", OpIn, []any{"a", "b"}, "t.c IN ($1, $2)", true, []any{"a", "b"}},
		{"in_empty", OpIn, []any{}, "1 = 0", true, nil},
		{"in_scalar", OpIn, "not-a-list", "", false, nil},
		{"not_in", OpNotIn, []any{"a"}, "t.c NOT IN ($1)", true, []any{"a"}},
		{"not_in_empty", OpNotIn, []any{}, "", false, nil},
		{"is_null", OpIsNull, nil, "t.c IS NULL", true, nil},
		{"is_not_null", OpIsNotNull, nil, "t.c IS NOT NULL", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &argBuilder{}
			got, ok := tc.op.predicate("t.c", tc.value, b)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.wantSQL {
				t.Fatalf("sql = %q, want %q", got, tc.wantSQL)
			}
			if tc.wantArgs == nil {
				if len(b.args) != 0 {
					t.Fatalf("unexpected args %v", b.args)
				}
				return
			}
			if !reflect.DeepEqual(b.args, tc.wantArgs) {
				t.Fatalf("args = %v, want %v", b.args, tc.wantArgs)
			}
		})
	}
}

func TestContainsPatternFromNonString(t *testing.T) {
	b := &argBuilder{}
	if _, ok := OpContains.predicate("t.c", 250, b); !ok {
		t.Fatal("expected ok")
	}
	if b.args[0] != "%250%" {
		t.Fatalf("pattern = %v, want %%250%%", b.args[0])
	}
}
