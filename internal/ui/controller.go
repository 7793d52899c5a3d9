// Package ui holds the view state controller behind the user management
// front end: which view is shown, which user is being edited, the current
// page, and the error banner. Mutations go through the API and are followed
// by invalidating and refetching the list instead of patching it locally.
//
// Controller methods are safe to call from several goroutines. Network calls
// run without the lock held, so a slow delete on one row does not block
// navigation or actions on other rows.
package ui

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"usermgmt/internal/domain"
	"usermgmt/internal/errfmt"
	"usermgmt/internal/logger"
	"usermgmt/internal/querycache"
	"usermgmt/internal/validation"
)

type View string

const (
	ViewList   View = "list"
	ViewCreate View = "create"
	ViewEdit   View = "edit"
)

const usersKey = "users"

var (
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	ErrDeleteInProgress = errors.New("user is already being deleted")
	ErrNotInForm        = errors.New("submit requires the create or edit view")
	ErrNotInList        = errors.New("delete requires the list view")
)

// UserAPI is the subset of the REST client the controller drives.
type UserAPI interface {
	ListUsers(ctx context.Context, params domain.PaginationParams) (*domain.UserListResponse, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, data domain.UserCreate) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, data domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

type State struct {
	CurrentView  View
	SelectedUser *domain.User
	CurrentPage  int
	ErrorMessage string
}

// FormInput is the raw text of the name and email inputs.
type FormInput struct {
	Name  string
	Email string
}

type Form struct {
	Values      FormInput
	FieldErrors validation.FieldErrors
}

type Controller struct {
	api      UserAPI
	cache    *querycache.Cache[*domain.UserListResponse]
	log      logger.Logger
	pageSize int

	mu         sync.Mutex
	state      State
	form       Form
	list       *domain.UserListResponse
	listErr    string
	loads      int
	submitting bool
	deleting   map[string]bool
	gen        uint64
	// loadSeq advances on every Load and every invalidation. Only the load
	// holding the latest value may touch the list or its error.
	loadSeq uint64
}

type Option func(*Controller)

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func WithCache(cache *querycache.Cache[*domain.UserListResponse]) Option {
	return func(c *Controller) { c.cache = cache }
}

func New(api UserAPI, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		cache:    querycache.New[*domain.UserListResponse](),
		log:      logger.NewNop(),
		pageSize: domain.DefaultPageSize,
		state:    State{CurrentView: ViewList, CurrentPage: 1},
		deleting: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns a snapshot. SelectedUser is a copy.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.SelectedUser != nil {
		u := *s.SelectedUser
		s.SelectedUser = &u
	}
	return s
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := Form{Values: c.form.Values}
	if len(c.form.FieldErrors) > 0 {
		f.FieldErrors = validation.FieldErrors{}
		for k, v := range c.form.FieldErrors {
			f.FieldErrors[k] = v
		}
	}
	return f
}

func (c *Controller) PageSize() int {
	return c.pageSize
}

// Users is the current page of the last successful list fetch.
func (c *Controller) Users() []domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list == nil {
		return nil
	}
	return append([]domain.User(nil), c.list.Users...)
}

func (c *Controller) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list == nil {
		return 0
	}
	return c.list.Total
}

func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller) totalPagesLocked() int {
	if c.list == nil {
		return 0
	}
	return domain.TotalPages(c.list.Total, c.pageSize)
}

// ShowPagination reports whether page controls should be rendered.
func (c *Controller) ShowPagination() bool {
	return c.TotalPages() > 1
}

func (c *Controller) HasPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage > 1
}

func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage < c.totalPagesLocked()
}

// ListError is the list query's own failure, shown with a retry action.
func (c *Controller) ListError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listErr
}

func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads > 0
}

func (c *Controller) IsSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) IsDeleting(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[id]
}

func (c *Controller) CreateNew() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(ViewCreate, nil)
	c.form = Form{}
}

func (c *Controller) Edit(user domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(ViewEdit, &user)
	c.form = Form{Values: FormInput{Name: user.Name, Email: user.Email}}
}

func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(ViewList, nil)
}

func (c *Controller) navigateLocked(v View, selected *domain.User) {
	c.state.CurrentView = v
	c.state.SelectedUser = selected
	c.state.ErrorMessage = ""
	c.gen++
}

// Load fetches the current page, from the cache when it holds it.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.CurrentPage
	c.loadSeq++
	seq := c.loadSeq
	c.loads++
	c.mu.Unlock()

	res, err := c.fetchPage(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loads--
	if seq != c.loadSeq || page != c.state.CurrentPage {
		// superseded by a newer load, an invalidation or a page change
		return err
	}

	if err != nil {
		c.listErr = errfmt.Format(err)
		return err
	}
	c.listErr = ""
	c.list = res

	return nil
}

// Retry drops the cached current page and loads it again.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	key := c.pageKey(c.state.CurrentPage)
	c.mu.Unlock()

	c.invalidate(key...)
	return c.Load(ctx)
}

// ChangePage moves to page n and loads it. Out of range pages are ignored.
func (c *Controller) ChangePage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || n > c.totalPagesLocked() || n == c.state.CurrentPage {
		c.mu.Unlock()
		return nil
	}
	c.state.CurrentPage = n
	c.mu.Unlock()

	return c.Load(ctx)
}

// Submit validates the form and creates or updates the user. Field errors
// are returned without any network call. On an API failure the view and
// the entered values stay as they are and ErrorMessage is set.
func (c *Controller) Submit(ctx context.Context, in FormInput) (validation.FieldErrors, error) {
	c.mu.Lock()
	view := c.state.CurrentView
	if view != ViewCreate && view != ViewEdit {
		c.mu.Unlock()
		return nil, ErrNotInForm
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}

	c.form = Form{Values: in}

	var (
		createData domain.UserCreate
		updateData domain.UserUpdate
		selectedID string
		fieldErrs  validation.FieldErrors
	)
	if view == ViewCreate {
		createData, fieldErrs = validation.ValidateCreate(domain.UserCreate{Name: in.Name, Email: in.Email})
	} else {
		selected := *c.state.SelectedUser
		selectedID = selected.ID
		updateData, fieldErrs = validation.ValidateUpdate(domain.UserUpdate{Name: &in.Name, Email: &in.Email})
		updateData = changedFields(selected, updateData)
	}
	if fieldErrs != nil {
		c.form.FieldErrors = fieldErrs
		c.mu.Unlock()
		return fieldErrs, nil
	}

	c.submitting = true
	gen := c.gen
	c.mu.Unlock()

	var (
		saved *domain.User
		err   error
	)
	if view == ViewCreate {
		saved, err = c.api.CreateUser(ctx, createData)
	} else {
		saved, err = c.api.UpdateUser(ctx, selectedID, updateData)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		if c.gen == gen {
			c.state.ErrorMessage = errfmt.Format(err)
		}
		c.mu.Unlock()

		c.log.Warn("ui: submit failed", "view", string(view), "error", err)
		return nil, err
	}
	c.mu.Unlock()

	c.invalidate(usersKey)

	c.mu.Lock()
	if c.gen != gen {
		// navigated away while the call was in flight
		c.mu.Unlock()
		return nil, nil
	}
	c.navigateLocked(ViewList, nil)
	if view == ViewCreate {
		c.form = Form{}
	} else if saved != nil {
		c.form = Form{Values: FormInput{Name: saved.Name, Email: saved.Email}}
	}
	c.mu.Unlock()

	c.reload(ctx)
	return nil, nil
}

// Delete removes user after confirm approves. A declined confirmation makes
// no call and changes nothing. The list is refetched whether or not the
// delete succeeded.
func (c *Controller) Delete(ctx context.Context, user domain.User, confirm ConfirmFunc) error {
	c.mu.Lock()
	if c.state.CurrentView != ViewList {
		c.mu.Unlock()
		return ErrNotInList
	}
	if c.deleting[user.ID] {
		c.mu.Unlock()
		return ErrDeleteInProgress
	}
	c.mu.Unlock()

	if confirm == nil || !confirm("Are you sure you want to delete this user?") {
		return nil
	}

	c.mu.Lock()
	if c.deleting[user.ID] {
		c.mu.Unlock()
		return ErrDeleteInProgress
	}
	c.deleting[user.ID] = true
	c.mu.Unlock()

	err := c.api.DeleteUser(ctx, user.ID)

	c.mu.Lock()
	delete(c.deleting, user.ID)
	if err != nil {
		c.state.ErrorMessage = errfmt.Format(err)
	} else {
		c.state.ErrorMessage = ""
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("ui: delete failed", "id", user.ID, "error", err)
	}

	c.invalidate(usersKey)
	c.reload(ctx)

	return err
}

// reload refetches the current page after a mutation, stepping back when
// the page no longer exists.
func (c *Controller) reload(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		return
	}

	c.mu.Lock()
	last := c.totalPagesLocked()
	stepBack := last >= 1 && c.state.CurrentPage > last
	if stepBack {
		c.state.CurrentPage = last
	}
	c.mu.Unlock()

	if stepBack {
		_ = c.Load(ctx)
	}
}

// invalidate drops cached pages under prefix and retires loads already in
// flight, so a fetch that started before a mutation cannot land after it.
func (c *Controller) invalidate(prefix ...string) {
	c.mu.Lock()
	c.loadSeq++
	c.mu.Unlock()

	c.cache.Invalidate(prefix...)
}

func (c *Controller) fetchPage(ctx context.Context, page int) (*domain.UserListResponse, error) {
	params := domain.PaginationParams{Page: page, Size: c.pageSize}
	return c.cache.Get(ctx, c.pageKey(page), func(ctx context.Context) (*domain.UserListResponse, error) {
		return c.api.ListUsers(ctx, params)
	})
}

func (c *Controller) pageKey(page int) querycache.Key {
	return querycache.Key{usersKey, strconv.Itoa(page), strconv.Itoa(c.pageSize)}
}

// changedFields keeps only the fields that differ from the stored user, so
// an untouched email is not sent.
func changedFields(current domain.User, data domain.UserUpdate) domain.UserUpdate {
	var out domain.UserUpdate
	if data.Name != nil && *data.Name != current.Name {
		out.Name = data.Name
	}
	if data.Email != nil && *data.Email != current.Email {
		out.Email = data.Email
	}
	return out
}
