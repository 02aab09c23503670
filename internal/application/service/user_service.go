package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
)

const minPasswordLength = 8

// UserService handles staff management. Routes using it require the owner role.
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

// ListUsers returns a paginated list of staff
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a staff member by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the input for adding a staff member.
// Password may be empty for accounts that only sign in with Google.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.Role
}

// CreateUser adds a staff member
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = enum.RoleStaff
	}

	var errs fieldErrors
	errs.required("name", name)
	if _, err := mail.ParseAddress(email); err != nil {
		errs.add("email", "must be a valid email address")
	}
	if input.Password != "" && len(input.Password) < minPasswordLength {
		errs.add("password", "must be at least 8 characters")
	}
	if !input.Role.IsValid() {
		errs.add("role", "must be owner or staff")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User with this email already exists")
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Provider: "local",
		Role:     input.Role,
		Active:   true,
	}
	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("user create failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	s.log.Info("staff user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUserInput represents the input for changing a staff member.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string
	Password *string
	Role     *enum.Role
	Active   *bool
}

// UpdateUser changes a staff member. actorID is the owner making the change;
// owners cannot demote or deactivate themselves.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id string, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var errs fieldErrors
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		errs.required("name", name)
		user.Name = name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			errs.add("role", "must be owner or staff")
		} else if actorID == id && *input.Role != enum.RoleOwner {
			errs.add("role", "you cannot remove your own owner role")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		if actorID == id && !*input.Active {
			errs.add("active", "you cannot deactivate your own account")
		}
		user.Active = *input.Active
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		errs.add("password", "must be at least 8 characters")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error("user update failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}
