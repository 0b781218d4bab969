package query

import (
	"reflect"
	"strings"
	"testing"
)

var testItemEntity = NewEntity("Item", "items", true, []Column{
	{Name: "id"},
	{Name: "name", Text: true},
	{Name: "qty"},
	{Name: "created_at"},
})

var testOwnerEntity = NewEntity("Owner", "owners", true, []Column{
	{Name: "id"},
	{Name: "email", Text: true},
	{Name: "secret", Text: true},
})

var testTagEntity = NewEntity("Tag", "tags", false, []Column{
	{Name: "id"},
	{Name: "label", Text: true},
})

func ownerJoin(outer bool) Join {
	return Join{
		Entity:   testOwnerEntity,
		On:       "items.owner_id = owners.id",
		Alias:    "owner",
		Outer:    outer,
		LoadOnly: []string{"id", "email"},
	}
}

func TestSelectSQLBase(t *testing.T) {
	spec := Spec{Entity: testItemEntity}
	sqlStr, args := spec.SelectSQL()

	want := "SELECT items.id, items.name, items.qty, items.created_at FROM items WHERE items.deleted_at IS NULL"
	if sqlStr != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", sqlStr, want)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSearchOrAcrossFieldsAndFiltersAnd(t *testing.T) {
	spec := Spec{
		Entity:         testItemEntity,
		Search:         "kopi",
		AutoSearchText: true,
		Filters: []Filter{
			{Key: "qty", Op: OpGreaterOrEqual, Value: 5},
		},
		Joins: []Join{ownerJoin(false)},
	}
	sqlStr, args := spec.SelectSQL()

	wantWhere := "WHERE items.deleted_at IS NULL AND owners.deleted_at IS NULL AND " +
		"(items.name ILIKE $1 OR owners.email ILIKE $2 OR owners.secret ILIKE $3) AND items.qty >= $4"
	if !strings.Contains(sqlStr, wantWhere) {
		t.Fatalf("where clause mismatch:\n got: %s\nwant substring: %s", sqlStr, wantWhere)
	}
	wantArgs := []any{"%kopi%", "%kopi%", "%kopi%", 5}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args mismatch: got %v want %v", args, wantArgs)
	}
}

func TestUnknownFilterAndSortAreNoOps(t *testing.T) {
	spec := Spec{
		Entity:  testItemEntity,
		Filters: []Filter{{Key: "no_such_column", Op: OpEqual, Value: "x"}},
		SortBy:  "also_missing",
	}
	sqlStr, args := spec.SelectSQL()

	if strings.Contains(sqlStr, "no_such_column") {
		t.Fatalf("unknown filter leaked into sql: %s", sqlStr)
	}
	if strings.Contains(sqlStr, "ORDER BY") {
		t.Fatalf("unknown sort with no default produced ORDER BY: %s", sqlStr)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestUnknownSortFallsBackToDefault(t *testing.T) {
	spec := Spec{
		Entity:      testItemEntity,
		SortBy:      "missing",
		DefaultSort: "created_at",
	}
	sqlStr, _ := spec.SelectSQL()
	if !strings.HasSuffix(sqlStr, "ORDER BY items.created_at DESC") {
		t.Fatalf("default sort missing: %s", sqlStr)
	}
}

func TestSortAscExplicit(t *testing.T) {
	spec := Spec{Entity: testItemEntity, SortBy: "qty", SortOrder: "ASC"}
	sqlStr, _ := spec.SelectSQL()
	if !strings.HasSuffix(sqlStr, "ORDER BY items.qty ASC") {
		t.Fatalf("asc sort missing: %s", sqlStr)
	}
}

func TestInnerVsOuterJoin(t *testing.T) {
	inner, _ := Spec{Entity: testItemEntity, Joins: []Join{ownerJoin(false)}}.SelectSQL()
	if !strings.Contains(inner, " JOIN owners ON items.owner_id = owners.id") ||
		strings.Contains(inner, "LEFT JOIN") {
		t.Fatalf("expected inner join: %s", inner)
	}

	outer, _ := Spec{Entity: testItemEntity, Joins: []Join{ownerJoin(true)}}.SelectSQL()
	if !strings.Contains(outer, " LEFT JOIN owners ON items.owner_id = owners.id") {
		t.Fatalf("expected left join: %s", outer)
	}
}

func TestLoadOnlyRestrictsJoinedColumns(t *testing.T) {
	spec := Spec{Entity: testItemEntity, Joins: []Join{ownerJoin(false)}}
	sqlStr, _ := spec.SelectSQL()

	if !strings.Contains(sqlStr, "owners.id AS owner__id") ||
		!strings.Contains(sqlStr, "owners.email AS owner__email") {
		t.Fatalf("aliased join columns missing: %s", sqlStr)
	}
	if strings.Contains(sqlStr, "owners.secret") {
		t.Fatalf("load-only allowlist leaked a column: %s", sqlStr)
	}
}

func TestUnaliasedJoinAddsNoColumns(t *testing.T) {
	spec := Spec{
		Entity: testItemEntity,
		Joins:  []Join{{Entity: testTagEntity, On: "items.tag_id = tags.id"}},
	}
	sqlStr, _ := spec.SelectSQL()
	if strings.Contains(sqlStr, "tags.label") {
		t.Fatalf("unaliased join contributed select columns: %s", sqlStr)
	}
	if !strings.Contains(sqlStr, " JOIN tags ON items.tag_id = tags.id") {
		t.Fatalf("join clause missing: %s", sqlStr)
	}
}

func TestQualifiedFilterTokens(t *testing.T) {
	spec := Spec{
		Entity: testItemEntity,
		Joins:  []Join{ownerJoin(false)},
		Filters: []Filter{
			{Key: "Owner.email", Op: OpEqual, Value: "a@b.c"},
			{Key: "owner.email", Op: OpNotEqual, Value: "x@y.z"},
		},
	}
	sqlStr, args := spec.SelectSQL()
	if !strings.Contains(sqlStr, "owners.email = $1") ||
		!strings.Contains(sqlStr, "owners.email <> $2") {
		t.Fatalf("qualified tokens not resolved: %s", sqlStr)
	}
	if !reflect.DeepEqual(args, []any{"a@b.c", "x@y.z"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestNonTextSearchFieldIsCast(t *testing.T) {
	spec := Spec{
		Entity:       testItemEntity,
		Search:       "42",
		SearchFields: []string{"qty"},
	}
	sqlStr, args := spec.SelectSQL()
	if !strings.Contains(sqlStr, "CAST(items.qty AS TEXT) ILIKE $1") {
		t.Fatalf("numeric search field not cast: %s", sqlStr)
	}
	if !reflect.DeepEqual(args, []any{"%42%"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestSearchOverUnresolvableFieldsRestrictsNothing(t *testing.T) {
	spec := Spec{
		Entity:       testItemEntity,
		Search:       "kopi",
		SearchFields: []string{"ghost", "phantom"},
	}
	sqlStr, args := spec.SelectSQL()
	if strings.Contains(sqlStr, "ILIKE") {
		t.Fatalf("unresolvable search fields produced a condition: %s", sqlStr)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestEmptyInMatchesNothingEmptyNotInSkipped(t *testing.T) {
	inSpec := Spec{
		Entity:  testItemEntity,
		Filters: []Filter{{Key: "qty", Op: OpIn, Value: []any{}}},
	}
	sqlStr, _ := inSpec.SelectSQL()
	if !strings.Contains(sqlStr, "1 = 0") {
		t.Fatalf("empty IN should match nothing: %s", sqlStr)
	}

	notInSpec := Spec{
		Entity:  testItemEntity,
		Filters: []Filter{{Key: "qty", Op: OpNotIn, Value: []any{}}},
	}
	sqlStr, args := notInSpec.SelectSQL()
	if strings.Contains(sqlStr, "NOT IN") || strings.Contains(sqlStr, "1 = 0") {
		t.Fatalf("empty NOT IN should be skipped: %s", sqlStr)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestTypedSliceForIn(t *testing.T) {
	spec := Spec{
		Entity:  testItemEntity,
		Filters: []Filter{{Key: "qty", Op: OpIn, Value: []int{1, 2, 3}}},
	}
	sqlStr, args := spec.SelectSQL()
	if !strings.Contains(sqlStr, "items.qty IN ($1, $2, $3)") {
		t.Fatalf("typed slice not expanded: %s", sqlStr)
	}
	if !reflect.DeepEqual(args, []any{1, 2, 3}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestPaginationRequiresBothParams(t *testing.T) {
	both, _ := Spec{Entity: testItemEntity, Page: 2, PerPage: 10}.SelectSQL()
	if !strings.HasSuffix(both, "LIMIT 10 OFFSET 10") {
		t.Fatalf("window missing: %s", both)
	}

	onlyPage, _ := Spec{Entity: testItemEntity, Page: 2}.SelectSQL()
	onlyPer, _ := Spec{Entity: testItemEntity, PerPage: 10}.SelectSQL()
	for _, sqlStr := range []string{onlyPage, onlyPer} {
		if strings.Contains(sqlStr, "LIMIT") || strings.Contains(sqlStr, "OFFSET") {
			t.Fatalf("lone pagination param produced a window: %s", sqlStr)
		}
	}
}

func TestCountMirrorsSelectWithoutSortAndWindow(t *testing.T) {
	spec := Spec{
		Entity:         testItemEntity,
		Joins:          []Join{ownerJoin(false)},
		Search:         "kopi",
		AutoSearchText: true,
		Filters:        []Filter{{Key: "qty", Op: OpGreaterThan, Value: 1}},
		SortBy:         "created_at",
		Page:           3,
		PerPage:        20,
	}

	selectSQL, selectArgs := spec.SelectSQL()
	countSQL, countArgs := spec.CountSQL()

	if !strings.HasPrefix(countSQL, "SELECT COUNT(*) FROM items") {
		t.Fatalf("unexpected count head: %s", countSQL)
	}
	if strings.Contains(countSQL, "ORDER BY") || strings.Contains(countSQL, "LIMIT") {
		t.Fatalf("count must not sort or window: %s", countSQL)
	}

	wherePos := strings.Index(selectSQL, " WHERE ")
	orderPos := strings.Index(selectSQL, " ORDER BY ")
	selectWhere := selectSQL[wherePos:orderPos]
	if !strings.Contains(countSQL, selectWhere) {
		t.Fatalf("count where diverges from select:\nselect: %s\ncount:  %s", selectWhere, countSQL)
	}
	if !reflect.DeepEqual(selectArgs, countArgs) {
		t.Fatalf("args diverge: select %v count %v", selectArgs, countArgs)
	}
}

func TestIncludeDeletedDropsSoftDeleteGuards(t *testing.T) {
	spec := Spec{Entity: testItemEntity, Joins: []Join{ownerJoin(true)}, IncludeDeleted: true}
	sqlStr, _ := spec.SelectSQL()
	if strings.Contains(sqlStr, "deleted_at") {
		t.Fatalf("soft delete guard present despite IncludeDeleted: %s", sqlStr)
	}
}
