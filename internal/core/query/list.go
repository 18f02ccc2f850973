// Package query holds the store-agnostic description of a paginated listing:
// the normalized list parameters and the plan (filter, sort, projection,
// window) that a store renders into its own query language.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "createdAt"
)

// SortOrder is the direction requested by the caller.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// RawListQuery carries list parameters as they arrive from the transport
// layer. Nil means "not provided".
type RawListQuery struct {
	Page      *float64
	Limit     *float64
	SortBy    *string
	SortOrder *string
	Search    *string
}

// ListQuery is a normalized listing request.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Search    string
}

// Normalize applies defaults and truncates numeric values to integers.
// Page is not floored: page <= 0 produces a negative skip.
func Normalize(raw RawListQuery) ListQuery {
	q := ListQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: SortDesc,
	}
	if raw.Page != nil {
		q.Page = truncate(*raw.Page)
	}
	if raw.Limit != nil {
		q.Limit = truncate(*raw.Limit)
	}
	if raw.SortBy != nil && *raw.SortBy != "" {
		q.SortBy = *raw.SortBy
	}
	if raw.SortOrder != nil && *raw.SortOrder != "" {
		q.SortOrder = SortOrder(*raw.SortOrder)
	}
	if raw.Search != nil {
		q.Search = *raw.Search
	}
	return q
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

// Skip is the number of matching records discarded before the page.
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Descending reports whether results are ordered high to low. Anything other
// than exactly "ASC" sorts descending.
func (q ListQuery) Descending() bool {
	return q.SortOrder != SortAsc
}

// CacheKey is a stable textual form of q, used to key cached pages.
func (q ListQuery) CacheKey() string {
	return strings.Join([]string{
		"p=" + strconv.Itoa(q.Page),
		"l=" + strconv.Itoa(q.Limit),
		"s=" + q.SortBy,
		"o=" + string(q.SortOrder),
		"q=" + strings.ToLower(q.Search),
	}, ":")
}

func (q ListQuery) String() string {
	return fmt.Sprintf("page=%d limit=%d sortBy=%s sortOrder=%s search=%q",
		q.Page, q.Limit, q.SortBy, q.SortOrder, q.Search)
}

// Plan is a complete listing query: filter, sort, projection and window.
type Plan struct {
	// Search is matched as a case-insensitive literal substring against any
	// of SearchFields. Empty matches every record.
	Search       string
	SearchFields []string
	SortBy       string
	Descending   bool
	Projection   []string
	Skip         int
	Limit        int
}

// NewPlan builds the plan for q over a collection with the given searchable
// and public fields.
func NewPlan(q ListQuery, searchFields, projection []string) Plan {
	return Plan{
		Search:       q.Search,
		SearchFields: searchFields,
		SortBy:       q.SortBy,
		Descending:   q.Descending(),
		Projection:   projection,
		Skip:         q.Skip(),
		Limit:        q.Limit,
	}
}

// Result is one page of a listing plus the size of the whole filtered set.
type Result[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

// Empty returns a result with a non-nil, zero-length page.
func Empty[T any]() Result[T] {
	return Result[T]{Data: []T{}}
}
