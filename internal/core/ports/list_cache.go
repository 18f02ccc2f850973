package ports

import "context"

// ListCache stores encoded listing pages per scope. A miss is (false, nil).
//
// Each scope has a generation counter. Invalidate advances it, and callers
// put the generation into their keys so pages from older generations are
// never read again.
type ListCache interface {
	Generation(ctx context.Context, scope string) (int64, error)
	Get(ctx context.Context, scope, key string, dst any) (bool, error)
	Set(ctx context.Context, scope, key string, value any) error
	Invalidate(ctx context.Context, scope string) error
}
