package services

import (
	"context"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/app/repositories"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/auth"
)

// UserService implements admin-side user management.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// UserPage is one page of the user list with its role summary.
type UserPage struct {
	Users      []models.User
	Pagination query.Pagination
	Stats      query.UserStats
}

// List returns a filtered, sorted page of users together with role counts
// computed over the same filter.
func (s *UserService) List(ctx context.Context, q url.Values) (UserPage, error) {
	params := query.ParseParams(q)
	filter := query.ParseUserFilters(q).Build()
	sort := query.ResolveSort(params.Sort, params.Order, query.UserSortFields)

	users, total, err := s.users.List(ctx, filter, sort, params)
	if err != nil {
		return UserPage{}, apperr.Internal("Failed to fetch users", err)
	}
	groups, err := s.users.RoleCounts(ctx, filter)
	if err != nil {
		return UserPage{}, apperr.Internal("Failed to fetch users", err)
	}

	return UserPage{
		Users:      users,
		Pagination: query.NewPagination(total, params),
		Stats:      query.FoldRoleCounts(groups),
	}, nil
}

// Get returns a single user by ID.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, apperr.Validation("Invalid user id")
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("Failed to fetch user", err)
	}
	return user, nil
}

// CreateUserInput is the validated admin user-creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Role     string
}

// Create lets an admin add a user with an explicit role.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	if !models.ValidRole(in.Role) {
		return models.User{}, apperr.Validation("Role must be admin or customer")
	}
	taken, err := s.users.EmailTaken(ctx, in.Email, primitive.NilObjectID)
	if err != nil {
		return models.User{}, apperr.Internal("Failed to create user", err)
	}
	if taken {
		return models.User{}, apperr.Conflict("User with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperr.Internal("Failed to create user", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: hash,
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if repositories.IsDuplicate(err) {
			return models.User{}, apperr.Conflict("User with this email already exists")
		}
		return models.User{}, apperr.Internal("Failed to create user", err)
	}
	user.Password = ""
	return user, nil
}

// UpdateUserInput is the validated admin user-update payload. Empty fields
// are left unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Role     string
}

// Update modifies a user's details or role.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, apperr.Validation("Invalid user id")
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Mobile != "" {
		fields["mobile"] = in.Mobile
	}
	if in.Role != "" {
		if !models.ValidRole(in.Role) {
			return models.User{}, apperr.Validation("Role must be admin or customer")
		}
		fields["role"] = in.Role
	}
	if in.Email != "" {
		taken, err := s.users.EmailTaken(ctx, in.Email, oid)
		if err != nil {
			return models.User{}, apperr.Internal("Failed to update user", err)
		}
		if taken {
			return models.User{}, apperr.Conflict("Email is already in use")
		}
		fields["email"] = in.Email
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, apperr.Internal("Failed to update user", err)
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	user, err := s.users.Update(ctx, oid, fields)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("Failed to update user", err)
	}
	return user, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("Invalid user id")
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return apperr.Internal("Failed to delete user", err)
	}
	return nil
}
