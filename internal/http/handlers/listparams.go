package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/query"

	"github.com/gin-gonic/gin"
)

const maxPerPage = 100

// ParseListParams reads the shared list query parameters. The filters
// parameter arrives as a JSON-encoded string; malformed JSON means "no
// filters". Supplying only one of page/per_page leaves the request
// unpaginated.
func ParseListParams(c *gin.Context) domain.ListParams {
	p := domain.ListParams{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}

	if raw := c.Query("filters"); raw != "" {
		var filters []domain.FilterInput
		if err := json.Unmarshal([]byte(raw), &filters); err == nil {
			p.Filters = filters
		}
	}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			if page < 1 {
				page = 1
			}
			p.Page = page
		}
	}
	if raw := c.Query("per_page"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil {
			if perPage < 1 {
				perPage = 1
			}
			if perPage > maxPerPage {
				perPage = maxPerPage
			}
			p.PerPage = perPage
		}
	}
	return p
}

// pageMetaFor returns meta only when the request was paginated.
func pageMetaFor(p domain.ListParams, total int) *query.PageMeta {
	if !p.Paginated() {
		return nil
	}
	meta := query.NewPageMeta(total, p.Page, p.PerPage)
	return &meta
}
