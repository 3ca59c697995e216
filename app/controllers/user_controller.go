package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/bind"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewUserService()}
}

// Index lists users with pagination, filtering, and role counts.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		response.Error(w, err, "Failed to fetch users")
		return
	}
	response.List(w, page.Users, page.Pagination, page.Stats)
}

func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err, "Failed to fetch user")
		return
	}
	response.Success(w, user)
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"nullable,digits_between=7,15"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,in=admin,customer"`
}

func (c *UserController) Store(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	user, err := c.service.Create(r.Context(), services.CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Mobile:   body.Mobile,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		response.Error(w, err, "Failed to create user")
		return
	}
	response.Created(w, "User created successfully", user)
}

type updateUserRequest struct {
	Name     string `json:"name" validate:"nullable,max=100"`
	Email    string `json:"email" validate:"nullable,email"`
	Mobile   string `json:"mobile" validate:"nullable,digits_between=7,15"`
	Password string `json:"password" validate:"nullable,min=6"`
	Role     string `json:"role" validate:"nullable,in=admin,customer"`
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateUserRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	user, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Mobile:   body.Mobile,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		response.Error(w, err, "Failed to update user")
		return
	}
	response.SuccessMessage(w, "User updated successfully", user)
}

func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err, "Failed to delete user")
		return
	}
	response.SuccessMessage(w, "User deleted successfully", nil)
}
