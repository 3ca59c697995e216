// Package controllers maps HTTP requests onto the service layer. Bodies
// are decoded and validated by pkg/bind; service errors carry their HTTP
// status and are written by response.Error.
package controllers

import (
	"net/http"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/bind"
	"github.com/vyshnav-v/food-delivery/pkg/middleware"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"nullable,digits_between=7,15"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"nullable,in=admin,customer"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	user, token, err := c.service.Register(r.Context(), services.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Mobile:   body.Mobile,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		response.Error(w, err, "Failed to register user")
		return
	}
	response.Created(w, "User registered successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	user, token, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(w, err, "Failed to log in")
		return
	}
	response.SuccessMessage(w, "Login successful", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout acknowledges the client discarding its token. Tokens are
// stateless JWTs, so there is nothing to revoke server-side.
func (c *AuthController) Logout(w http.ResponseWriter, _ *http.Request) {
	response.SuccessMessage(w, "Logged out successfully", nil)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	user, err := c.service.Me(r.Context(), userID)
	if err != nil {
		response.Error(w, err, "Failed to load profile")
		return
	}
	response.Success(w, user)
}

type profileRequest struct {
	Name     string `json:"name" validate:"nullable,max=100"`
	Email    string `json:"email" validate:"nullable,email"`
	Mobile   string `json:"mobile" validate:"nullable,digits_between=7,15"`
	Password string `json:"password" validate:"nullable,min=6"`
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var body profileRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	user, err := c.service.UpdateProfile(r.Context(), userID, services.ProfileInput{
		Name:     body.Name,
		Email:    body.Email,
		Mobile:   body.Mobile,
		Password: body.Password,
	})
	if err != nil {
		response.Error(w, err, "Failed to update profile")
		return
	}
	response.SuccessMessage(w, "Profile updated successfully", user)
}
