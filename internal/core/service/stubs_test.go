package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// ---------------------------------------------------------------------------
// In-memory listing shared by the stub repositories. It follows the same
// plan semantics as the Mongo aggregation.
// ---------------------------------------------------------------------------

func runPlan[T any](records []T, plan query.Plan, field func(T, string) any) (query.Result[T], error) {
	if plan.Skip < 0 {
		return query.Result[T]{}, errors.New("$skip must be non-negative")
	}
	if plan.Limit <= 0 {
		return query.Result[T]{}, errors.New("$limit must be positive")
	}

	needle := strings.ToLower(plan.Search)
	matched := make([]T, 0, len(records))
	for _, r := range records {
		if needle == "" {
			matched = append(matched, r)
			continue
		}
		for _, f := range plan.SearchFields {
			if s, ok := field(r, f).(string); ok && strings.Contains(strings.ToLower(s), needle) {
				matched = append(matched, r)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := field(matched[i], plan.SortBy), field(matched[j], plan.SortBy)
		if plan.Descending {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})

	res := query.Result[T]{Data: []T{}, Count: int64(len(matched))}
	if plan.Skip >= len(matched) {
		return res, nil
	}
	end := plan.Skip + plan.Limit
	if end > len(matched) {
		end = len(matched)
	}
	res.Data = append(res.Data, matched[plan.Skip:end]...)
	return res, nil
}

func lessValue(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return av < bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// User repository stub
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User
	createErr error
	findErr   error
	listCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotRegistered
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("%024x", len(r.users)+1)
	r.users = append(r.users, clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) List(_ context.Context, plan query.Plan) (query.Result[domain.User], error) {
	r.listCalls++
	records := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		records = append(records, u.Public())
	}
	return runPlan(records, plan, userField)
}

func (r *stubUserRepo) countByEmail(email string) int {
	n := 0
	for _, u := range r.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

func userField(u domain.User, name string) any {
	switch name {
	case "username":
		return u.Username
	case "email":
		return u.Email
	case "createdAt":
		return u.CreatedAt
	case "updatedAt":
		return u.UpdatedAt
	}
	return nil
}

// ---------------------------------------------------------------------------
// Task repository stub
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	order     []string
	createErr error
	listErr   error
	listCalls int
	// listCtxErr is ctx.Err() as seen by the last List call.
	listCtxErr error
	// afterSnapshot runs once List has copied the records, before paging.
	afterSnapshot func()
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *t
	clone.ID = fmt.Sprintf("%024x", len(r.order)+1)
	r.tasks[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.UpdatedAt = time.Now().UTC()
	out := *t
	return &out, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	delete(r.tasks, id)
	return t, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

func (r *stubTaskRepo) List(ctx context.Context, plan query.Plan) (query.Result[domain.Task], error) {
	r.listCalls++
	r.listCtxErr = ctx.Err()
	if r.listErr != nil {
		return query.Result[domain.Task]{}, r.listErr
	}
	records := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok {
			records = append(records, *t)
		}
	}
	if hook := r.afterSnapshot; hook != nil {
		r.afterSnapshot = nil
		hook()
	}
	return runPlan(records, plan, taskField)
}

func taskField(t domain.Task, name string) any {
	switch name {
	case "title":
		return t.Title
	case "description":
		return t.Description
	case "status":
		return string(t.Status)
	case "dueDate":
		return t.DueDate
	case "createdAt":
		return t.CreatedAt
	case "updatedAt":
		return t.UpdatedAt
	}
	return nil
}

// ---------------------------------------------------------------------------
// List cache stub
// ---------------------------------------------------------------------------

type stubListCache struct {
	entries     map[string]any
	generations map[string]int64
	getErr      error
	genErr      error
	invalidated []string
}

func newStubListCache() *stubListCache {
	return &stubListCache{
		entries:     make(map[string]any),
		generations: make(map[string]int64),
	}
}

func (c *stubListCache) Generation(_ context.Context, scope string) (int64, error) {
	if c.genErr != nil {
		return 0, c.genErr
	}
	return c.generations[scope], nil
}

func (c *stubListCache) Get(_ context.Context, scope, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.entries[scope+"|"+key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *query.Result[domain.Task]:
		*d = v.(query.Result[domain.Task])
	case *query.Result[domain.User]:
		*d = v.(query.Result[domain.User])
	default:
		return false, fmt.Errorf("unexpected destination %T", dst)
	}
	return true, nil
}

func (c *stubListCache) Set(_ context.Context, scope, key string, value any) error {
	c.entries[scope+"|"+key] = value
	return nil
}

func (c *stubListCache) Invalidate(_ context.Context, scope string) error {
	c.invalidated = append(c.invalidated, scope)
	c.generations[scope]++
	for k := range c.entries {
		if strings.HasPrefix(k, scope+"|") {
			delete(c.entries, k)
		}
	}
	return nil
}

// stubIssuer records the user it signed for.
type stubIssuer struct {
	token string
	err   error
	got   domain.User
}

func (s *stubIssuer) Issue(u domain.User) (string, error) {
	s.got = u
	return s.token, s.err
}
