package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
	"github.com/shivam-singh-au17/assessment-sassy/internal/metrics"
)

const (
	scopeTasks = "tasks"
	scopeUsers = "users"

	// sharedListTimeout bounds a listing shared by several callers, which no
	// longer follows any single request's context.
	sharedListTimeout = 10 * time.Second
)

// lister runs the shared paginated listing for one collection, with an
// optional read-through cache. Identical concurrent misses share one query.
//
// Cached pages are keyed by the scope's generation. invalidate bumps it, so a
// page loaded before a write can only land under a generation nobody reads.
type lister[T any] struct {
	scope        string
	searchFields []string
	projection   []string
	fetch        func(ctx context.Context, plan query.Plan) (query.Result[T], error)
	cache        ports.ListCache
	sf           singleflight.Group
	log          zerolog.Logger
}

func (l *lister[T]) list(ctx context.Context, q query.ListQuery) (query.Result[T], error) {
	if l.cache == nil {
		return l.load(ctx, q)
	}

	gen, err := l.cache.Generation(ctx, l.scope)
	if err != nil {
		metrics.ListCacheTotal.WithLabelValues(l.scope, "error").Inc()
		l.log.Warn().Err(err).Str("scope", l.scope).Msg("list cache unavailable, querying database")
		return l.load(ctx, q)
	}

	key := fmt.Sprintf("g%d:%s", gen, q.CacheKey())
	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedListTimeout)
		defer cancel()

		var cached query.Result[T]
		hit, err := l.cache.Get(ctx, l.scope, key, &cached)
		switch {
		case err != nil:
			metrics.ListCacheTotal.WithLabelValues(l.scope, "error").Inc()
			l.log.Warn().Err(err).Str("scope", l.scope).Msg("list cache read failed, querying database")
		case hit:
			metrics.ListCacheTotal.WithLabelValues(l.scope, "hit").Inc()
			return cached, nil
		default:
			metrics.ListCacheTotal.WithLabelValues(l.scope, "miss").Inc()
		}

		res, err := l.load(ctx, q)
		if err != nil {
			return nil, err
		}
		if cur, err := l.cache.Generation(ctx, l.scope); err != nil || cur != gen {
			l.log.Debug().Str("scope", l.scope).Int64("generation", gen).Msg("scope changed during listing, page not cached")
			return res, nil
		}
		if err := l.cache.Set(ctx, l.scope, key, res); err != nil {
			l.log.Warn().Err(err).Str("scope", l.scope).Msg("list cache write failed")
		}
		return res, nil
	})
	if err != nil {
		return query.Result[T]{}, err
	}
	return v.(query.Result[T]), nil
}

func (l *lister[T]) load(ctx context.Context, q query.ListQuery) (query.Result[T], error) {
	l.log.Debug().Str("scope", l.scope).Stringer("query", q).Msg("listing from database")

	start := time.Now()
	res, err := l.fetch(ctx, query.NewPlan(q, l.searchFields, l.projection))
	metrics.ListQueryDuration.WithLabelValues(l.scope).Observe(time.Since(start).Seconds())
	if err != nil {
		return query.Result[T]{}, fmt.Errorf("list %s: %w", l.scope, err)
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	return res, nil
}

// invalidate moves the scope to a new generation. Failures are logged only;
// cached pages expire on their own.
func (l *lister[T]) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, l.scope); err != nil {
		l.log.Warn().Err(err).Str("scope", l.scope).Msg("list cache invalidation failed")
	}
}
