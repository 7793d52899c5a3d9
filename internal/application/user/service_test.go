package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"usermgmt/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	users   map[string]*domain.User
	order   []string
	next    int
	updates int
	failGet error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*domain.User{}}
}

func (r *memRepo) GetUsers(_ context.Context, opts domain.ListOptions) ([]*domain.User, int64, error) {
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)

	start := min(opts.Skip, len(ids))
	end := min(start+opts.Limit, len(ids))

	out := []*domain.User{}
	for _, id := range ids[start:end] {
		u := *r.users[id]
		out = append(out, &u)
	}
	return out, int64(len(ids)), nil
}

func (r *memRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *memRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.next++
	user.ID = fmt.Sprintf("%03d", r.next)
	c := *user
	r.users[user.ID] = &c
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memRepo) UpdateUser(_ context.Context, id string, req domain.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	c := *u
	return &c, nil
}

func (r *memRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreate_NormalizesAndAssignsID(t *testing.T) {
	svc := NewService(newMemRepo())

	user, err := svc.Create(context.Background(), domain.UserCreate{Name: "  John Doe ", Email: " John@Example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UserCreate{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.UserCreate{Name: "B", Email: "A@EXAMPLE.COM"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestGet_Paginates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for i := range 12 {
		_, err := svc.Create(ctx, domain.UserCreate{Name: fmt.Sprint("U", i), Email: fmt.Sprintf("u%d@example.com", i)})
		require.NoError(t, err)
	}

	res, err := svc.Get(ctx, domain.PaginationParams{Page: 2, Size: 5})
	require.NoError(t, err)
	assert.Len(t, res.Users, 5)
	assert.EqualValues(t, 12, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 5, res.Size)

	res, err = svc.Get(ctx, domain.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Size)
	assert.Len(t, res.Users, 10)

	res, err = svc.Get(ctx, domain.PaginationParams{Page: 9, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, res.Users)
	assert.Empty(t, res.Users)
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, domain.UserCreate{Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.UserUpdate{Name: ptr("Jane Doe")})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "john@example.com", updated.Email)
}

func TestUpdate_NoChangesReturnsCurrent(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	created, err := svc.Create(ctx, domain.UserCreate{Name: "John", Email: "john@example.com"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, domain.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got, err = svc.Update(ctx, created.ID, domain.UserUpdate{Name: ptr("John"), Email: ptr("JOHN@example.com ")})
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 0, repo.updates)
}

func TestUpdate_EmailConflict(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	a, err := svc.Create(ctx, domain.UserCreate{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.UserCreate{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, domain.UserUpdate{Email: ptr("b@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdate_UnknownUser(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Update(context.Background(), "nope", domain.UserUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_RepoErrorPropagates(t *testing.T) {
	repo := newMemRepo()
	repo.failGet = errors.New("disk on fire")
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "1", domain.UserUpdate{})
	assert.EqualError(t, err, "disk on fire")
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, domain.UserCreate{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrUserNotFound)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
