package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shivam-singh-au17/assessment-sassy/internal/api/middleware"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/schema"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// ctxValues returns the values validated by the route's schema middleware.
func ctxValues(c echo.Context) schema.Values {
	if v := middleware.Values(c); v != nil {
		return v
	}
	return schema.Values{}
}

// listQuery reads the optional list parameters and normalizes them.
func listQuery(v schema.Values) query.ListQuery {
	var raw query.RawListQuery
	if f, ok := v.Float("page"); ok {
		raw.Page = &f
	}
	if f, ok := v.Float("limit"); ok {
		raw.Limit = &f
	}
	if s, ok := v.String("sortBy"); ok {
		raw.SortBy = &s
	}
	if s, ok := v.String("sortOrder"); ok {
		raw.SortOrder = &s
	}
	if s, ok := v.String("search"); ok {
		raw.Search = &s
	}
	return query.Normalize(raw)
}
