// Package user
package user

import (
	"context"
	"errors"

	"usermgmt/internal/domain"
)

type service struct {
	repo domain.UserRepository
}

func NewService(repo domain.UserRepository) domain.UserService {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, params domain.PaginationParams) (*domain.UserListResponse, error) {
	if params.Page <= 0 {
		params.Page = domain.DefaultPage
	}
	if params.Size <= 0 {
		params.Size = domain.DefaultPageSize
	}

	users, total, err := s.repo.GetUsers(ctx, domain.ListOptions{
		Skip:  params.Skip(),
		Limit: params.Size,
	})
	if err != nil {
		return nil, err
	}

	res := &domain.UserListResponse{
		Users: make([]domain.User, 0, len(users)),
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
	}
	for _, u := range users {
		res.Users = append(res.Users, *u)
	}

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req domain.UserCreate) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)

	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:  domain.NormalizeName(req.Name),
		Email: email,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Update(ctx context.Context, id string, req domain.UserUpdate) (*domain.User, error) {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes domain.UserUpdate
	if req.Name != nil {
		name := domain.NormalizeName(*req.Name)
		if name != existing.Name {
			changes.Name = &name
		}
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		if email != existing.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
			changes.Email = &email
		}
	}

	if changes.IsEmpty() {
		return existing, nil
	}

	return s.repo.UpdateUser(ctx, id, changes)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

// ensureEmailFree fails when email belongs to a user other than ownerID.
func (s *service) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	if user.ID != ownerID {
		return domain.ErrEmailAlreadyExists
	}

	return nil
}
