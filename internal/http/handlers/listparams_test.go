package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func listContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/items?"+rawQuery, nil)
	return c
}

func TestParseListParamsFilters(t *testing.T) {
	filters := url.QueryEscape(`[{"key":"status","operator":"equal","value":"trial"},{"key":"qty","operator":"gte","value":5}]`)
	p := ParseListParams(listContext(t, "search=kopi&filters="+filters+"&sort_by=name&sort_order=asc"))

	if p.Search != "kopi" || p.SortBy != "name" || p.SortOrder != "asc" {
		t.Fatalf("scalar params mismatch: %+v", p)
	}
	if len(p.Filters) != 2 {
		t.Fatalf("filters = %d, want 2", len(p.Filters))
	}
	if p.Filters[0].Key != "status" || p.Filters[0].Operator != "equal" || p.Filters[0].Value != "trial" {
		t.Fatalf("first filter mismatch: %+v", p.Filters[0])
	}
}

func TestParseListParamsMalformedFiltersMeansNoFilters(t *testing.T) {
	p := ParseListParams(listContext(t, "filters="+url.QueryEscape(`{"key": broken`)))
	if p.Filters != nil {
		t.Fatalf("malformed filters should yield none, got %+v", p.Filters)
	}
}

func TestParseListParamsPagination(t *testing.T) {
	p := ParseListParams(listContext(t, "page=2&per_page=25"))
	if !p.Paginated() || p.Page != 2 || p.PerPage != 25 {
		t.Fatalf("pagination mismatch: %+v", p)
	}

	p = ParseListParams(listContext(t, "page=2"))
	if p.Paginated() {
		t.Fatalf("lone page should not paginate: %+v", p)
	}

	p = ParseListParams(listContext(t, "per_page=10"))
	if p.Paginated() {
		t.Fatalf("lone per_page should not paginate: %+v", p)
	}
}

func TestParseListParamsClampsWindow(t *testing.T) {
	p := ParseListParams(listContext(t, "page=0&per_page=9999"))
	if p.Page != 1 {
		t.Fatalf("page = %d, want floor 1", p.Page)
	}
	if p.PerPage != maxPerPage {
		t.Fatalf("per_page = %d, want cap %d", p.PerPage, maxPerPage)
	}
}

func TestPageMetaForUnpaginatedIsNil(t *testing.T) {
	p := ParseListParams(listContext(t, "search=x"))
	if meta := pageMetaFor(p, 50); meta != nil {
		t.Fatalf("expected nil meta, got %+v", meta)
	}

	p = ParseListParams(listContext(t, "page=1&per_page=10"))
	meta := pageMetaFor(p, 95)
	if meta == nil || meta.TotalPages != 10 || !meta.HasNext || meta.HasPrev {
		t.Fatalf("meta mismatch: %+v", meta)
	}
}
