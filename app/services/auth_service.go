// Package services implements the business rules of the admin API on top
// of the repository layer. Services return apperr values; controllers map
// them to HTTP responses.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/repositories"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/auth"
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput is the validated signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Role     string
}

// Register creates an account and returns it with a fresh token.
// The first registered account may be an admin; after that, role
// defaults to customer unless an admin creates the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	taken, err := s.users.EmailTaken(ctx, in.Email, primitive.NilObjectID)
	if err != nil {
		return models.User{}, "", apperr.Internal("Failed to register user", err)
	}
	if taken {
		return models.User{}, "", apperr.Conflict("User with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", apperr.Internal("Failed to register user", err)
	}

	role := in.Role
	if !models.ValidRole(role) {
		role = models.RoleCustomer
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if repositories.IsDuplicate(err) {
			return models.User{}, "", apperr.Conflict("User with this email already exists")
		}
		return models.User{}, "", apperr.Internal("Failed to register user", err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return models.User{}, "", apperr.Internal("Failed to generate token", err)
	}
	user.Password = ""
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Wrong email and wrong password produce the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, "", apperr.Unauthorized("Invalid email or password")
		}
		return models.User{}, "", apperr.Internal("Failed to log in", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return models.User{}, "", apperr.Internal("Failed to generate token", err)
	}
	user.Password = ""
	return user, token, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apperr.Unauthorized("Invalid token")
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("Failed to load profile", err)
	}
	return user, nil
}

// ProfileInput is the validated profile-update payload. Empty fields are
// left unchanged.
type ProfileInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// UpdateProfile lets the authenticated user change their own details.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apperr.Unauthorized("Invalid token")
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Mobile != "" {
		fields["mobile"] = in.Mobile
	}
	if in.Email != "" {
		taken, err := s.users.EmailTaken(ctx, in.Email, oid)
		if err != nil {
			return models.User{}, apperr.Internal("Failed to update profile", err)
		}
		if taken {
			return models.User{}, apperr.Conflict("Email is already in use")
		}
		fields["email"] = in.Email
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, apperr.Internal("Failed to update profile", err)
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return s.Me(ctx, userID)
	}

	user, err := s.users.Update(ctx, oid, fields)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("Failed to update profile", err)
	}
	return user, nil
}
