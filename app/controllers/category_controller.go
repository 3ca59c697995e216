package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/bind"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{service: services.NewCategoryService()}
}

// Index lists categories. With includeProductCount=true each row carries
// its product count.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		response.Error(w, err, "Failed to fetch categories")
		return
	}
	if page.Counts != nil {
		response.List(w, page.Counts, page.Pagination, nil)
		return
	}
	response.List(w, page.Categories, page.Pagination, nil)
}

func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	category, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err, "Failed to fetch category")
		return
	}
	response.Success(w, category)
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"nullable,max=200"`
}

func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	category, err := c.service.Create(r.Context(), services.CategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(w, err, "Failed to create category")
		return
	}
	response.Created(w, "Category created successfully", category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	category, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.CategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(w, err, "Failed to update category")
		return
	}
	response.SuccessMessage(w, "Category updated successfully", category)
}

// Destroy deletes a category. It refuses while any product still
// references the category, so the client never has to pre-check.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err, "Failed to delete category")
		return
	}
	response.SuccessMessage(w, "Category deleted successfully", nil)
}
