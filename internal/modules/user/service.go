package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

type Service struct {
	users  UserRepository
	logger *zap.Logger
}

func NewService(users UserRepository, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" {
		return nil, ErrEmptyUser
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	u := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", u.ID))

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
		}
		u.Email = email
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
		}
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, id)
		}
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id = %d", ErrUserNotFound, id)
		}
		return err
	}
	return s.users.Delete(ctx, id)
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
