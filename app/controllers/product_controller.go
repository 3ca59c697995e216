package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/bind"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

// Index lists products with pagination, filtering, and sorting.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		response.Error(w, err, "Failed to fetch products")
		return
	}
	response.List(w, page.Products, page.Pagination, nil)
}

// Search returns the best text matches for the q parameter.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, err, "Failed to search products")
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err, "Failed to fetch product")
		return
	}
	response.Success(w, product)
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"nullable,max=500"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock" validate:"nullable,gte=0"`
	Status      string  `json:"status" validate:"nullable,in=available,unavailable,out-of-stock"`
	Featured    bool    `json:"featured"`
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body createProductRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	product, err := c.service.Create(r.Context(), services.ProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		ImageURL:    body.ImageURL,
		Stock:       body.Stock,
		Status:      body.Status,
		Featured:    body.Featured,
	})
	if err != nil {
		response.Error(w, err, "Failed to create product")
		return
	}
	response.Created(w, "Product created successfully", product)
}

// updateProductRequest uses pointers so an absent field and a zero value
// are distinguishable.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
	Featured    *bool    `json:"featured"`
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateProductRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	product, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		ImageURL:    body.ImageURL,
		Stock:       body.Stock,
		Status:      body.Status,
		Featured:    body.Featured,
	})
	if err != nil {
		response.Error(w, err, "Failed to update product")
		return
	}
	response.SuccessMessage(w, "Product updated successfully", product)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err, "Failed to delete product")
		return
	}
	response.SuccessMessage(w, "Product deleted successfully", nil)
}
