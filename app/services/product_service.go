package services

import (
	"context"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/app/repositories"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
)

// ProductService implements product management.
type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductService() *ProductService {
	return &ProductService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
	}
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Products   []models.Product
	Pagination query.Pagination
}

// List returns a filtered, sorted page of products.
func (s *ProductService) List(ctx context.Context, q url.Values) (ProductPage, error) {
	params := query.ParseParams(q)
	filter := query.ParseProductFilters(q).Build()
	sort := query.ResolveSort(params.Sort, params.Order, query.ProductSortFields)

	products, total, err := s.products.List(ctx, filter, sort, params)
	if err != nil {
		return ProductPage{}, apperr.Internal("Failed to fetch products", err)
	}
	return ProductPage{
		Products:   products,
		Pagination: query.NewPagination(total, params),
	}, nil
}

// productSearchLimit caps how many text matches a search returns.
const productSearchLimit = 10

// Search returns the best text-index matches for term.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("Search query is required")
	}
	products, err := s.products.Search(ctx, term, productSearchLimit)
	if err != nil {
		return nil, apperr.Internal("Failed to search products", err)
	}
	return products, nil
}

// Get returns a single product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.Validation("Invalid product id")
	}
	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Product{}, apperr.NotFound("Product")
		}
		return models.Product{}, apperr.Internal("Failed to fetch product", err)
	}
	return p, nil
}

// ProductInput is the validated create payload.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
	Status      string
	Featured    bool
}

// Create adds a product under an existing category.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return models.Product{}, apperr.Validation("Product name is required")
	}
	if in.Price < 0 {
		return models.Product{}, apperr.Validation("Price cannot be negative")
	}
	if in.Stock < 0 {
		return models.Product{}, apperr.Validation("Stock cannot be negative")
	}

	catID, err := primitive.ObjectIDFromHex(in.Category)
	if err != nil {
		return models.Product{}, apperr.Validation("Invalid category id")
	}
	if _, err := s.categories.FindByID(ctx, catID); err != nil {
		if repositories.IsNotFound(err) {
			return models.Product{}, apperr.NotFound("Category")
		}
		return models.Product{}, apperr.Internal("Failed to create product", err)
	}

	status := in.Status
	if !models.ValidProductStatus(status) {
		status = models.ProductAvailable
	}
	if in.Stock == 0 {
		status = models.ProductOutOfStock
	}

	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    catID,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		Status:      status,
		Featured:    in.Featured,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, apperr.Internal("Failed to create product", err)
	}
	return p, nil
}

// UpdateProductInput is the validated update payload. Pointer fields
// distinguish "absent" from zero values.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int
	Status      *string
	Featured    *bool
}

// Update modifies a product. Only the provided fields change.
func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.Validation("Invalid product id")
	}

	fields := bson.M{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Product{}, apperr.Validation("Product name is required")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return models.Product{}, apperr.Validation("Price cannot be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		catID, err := primitive.ObjectIDFromHex(*in.Category)
		if err != nil {
			return models.Product{}, apperr.Validation("Invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			if repositories.IsNotFound(err) {
				return models.Product{}, apperr.NotFound("Category")
			}
			return models.Product{}, apperr.Internal("Failed to update product", err)
		}
		fields["category"] = catID
	}
	if in.ImageURL != nil {
		fields["imageUrl"] = *in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return models.Product{}, apperr.Validation("Stock cannot be negative")
		}
		fields["stock"] = *in.Stock
	}
	if in.Status != nil {
		if !models.ValidProductStatus(*in.Status) {
			return models.Product{}, apperr.Validation("Invalid product status")
		}
		fields["status"] = *in.Status
	}
	if in.Featured != nil {
		fields["featured"] = *in.Featured
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	p, err := s.products.Update(ctx, oid, fields)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Product{}, apperr.NotFound("Product")
		}
		return models.Product{}, apperr.Internal("Failed to update product", err)
	}
	return p, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("Invalid product id")
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal("Failed to delete product", err)
	}
	return nil
}
