package query

import "testing"

func ptr[T any](v T) *T { return &v }

func TestNormalize_Defaults(t *testing.T) {
	q := Normalize(RawListQuery{})
	want := ListQuery{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: SortDesc}
	if q != want {
		t.Fatalf("got %+v, want %+v", q, want)
	}
	if q.Skip() != 0 || !q.Descending() {
		t.Fatalf("unexpected window: skip=%d descending=%v", q.Skip(), q.Descending())
	}
}

func TestNormalize_TruncatesAndKeepsNonPositivePages(t *testing.T) {
	cases := []struct {
		page, limit float64
		wantSkip    int
	}{
		{page: 2.9, limit: 5.5, wantSkip: 5},
		{page: 0, limit: 10, wantSkip: -10},
		{page: -1, limit: 3, wantSkip: -6},
	}
	for _, tc := range cases {
		q := Normalize(RawListQuery{Page: ptr(tc.page), Limit: ptr(tc.limit)})
		if got := q.Skip(); got != tc.wantSkip {
			t.Errorf("page=%v limit=%v: skip %d, want %d", tc.page, tc.limit, got, tc.wantSkip)
		}
	}
}

func TestDescending_OnlyExactASCIsAscending(t *testing.T) {
	for order, want := range map[string]bool{"ASC": false, "DESC": true, "asc": true, "sideways": true} {
		if got := Normalize(RawListQuery{SortOrder: ptr(order)}).Descending(); got != want {
			t.Errorf("sortOrder %q: descending=%v, want %v", order, got, want)
		}
	}
}

func TestCacheKey_IgnoresSearchCase(t *testing.T) {
	a := Normalize(RawListQuery{Search: ptr("Milk")})
	b := Normalize(RawListQuery{Search: ptr("mILK")})
	if a.CacheKey() != b.CacheKey() {
		t.Fatalf("expected equal keys, got %q and %q", a.CacheKey(), b.CacheKey())
	}
	if a.CacheKey() == Normalize(RawListQuery{Search: ptr("milk"), Page: ptr(2.0)}).CacheKey() {
		t.Fatal("different pages must not share a key")
	}
}

func TestListQuery_String(t *testing.T) {
	q := Normalize(RawListQuery{Search: ptr("a b")})
	want := `page=1 limit=10 sortBy=createdAt sortOrder=DESC search="a b"`
	if got := q.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
