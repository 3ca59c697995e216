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

// CategoryService implements category management, including the guard
// that keeps a category alive while products still reference it.
type CategoryService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCategoryService() *CategoryService {
	return &CategoryService{
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// CategoryPage is one page of the category list. Counts is non-nil only
// when the request asked for product counts.
type CategoryPage struct {
	Categories []models.Category
	Counts     []models.CategoryWithCount
	Pagination query.Pagination
}

// List returns a filtered, sorted page of categories. With
// includeProductCount=true each row carries how many products use it.
func (s *CategoryService) List(ctx context.Context, q url.Values) (CategoryPage, error) {
	params := query.ParseParams(q)
	filter := query.ParseCategoryFilters(q).Build()
	sort := query.ResolveSort(params.Sort, params.Order, query.CategorySortFields)

	categories, total, err := s.categories.List(ctx, filter, sort, params)
	if err != nil {
		return CategoryPage{}, apperr.Internal("Failed to fetch categories", err)
	}

	page := CategoryPage{
		Categories: categories,
		Pagination: query.NewPagination(total, params),
	}

	if q.Get("includeProductCount") == "true" && len(categories) > 0 {
		ids := make([]primitive.ObjectID, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		groups, err := s.products.CountsByCategory(ctx, ids)
		if err != nil {
			return CategoryPage{}, apperr.Internal("Failed to fetch categories", err)
		}
		counts := query.CountMap(groups)
		page.Counts = make([]models.CategoryWithCount, 0, len(categories))
		for _, c := range categories {
			page.Counts = append(page.Counts, models.CategoryWithCount{
				Category:     c,
				ProductCount: counts[c.ID],
			})
		}
	}

	return page, nil
}

// Get returns a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, apperr.Validation("Invalid category id")
	}
	c, err := s.categories.FindByID(ctx, oid)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Category{}, apperr.NotFound("Category")
		}
		return models.Category{}, apperr.Internal("Failed to fetch category", err)
	}
	return c, nil
}

// CategoryInput is the validated create/update payload.
type CategoryInput struct {
	Name        string
	Description string
}

func (in *CategoryInput) check() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return apperr.Validation("Category name is required")
	}
	if len(in.Name) > models.CategoryNameMax {
		return apperr.Validation("Category name cannot exceed %d characters", models.CategoryNameMax)
	}
	if len(in.Description) > models.CategoryDescriptionMax {
		return apperr.Validation("Description cannot exceed %d characters", models.CategoryDescriptionMax)
	}
	return nil
}

// Create adds a category with a unique name.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (models.Category, error) {
	if err := in.check(); err != nil {
		return models.Category{}, err
	}
	taken, err := s.categories.NameTaken(ctx, in.Name, primitive.NilObjectID)
	if err != nil {
		return models.Category{}, apperr.Internal("Failed to create category", err)
	}
	if taken {
		return models.Category{}, apperr.Conflict("Category with this name already exists")
	}

	c := models.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, &c); err != nil {
		if repositories.IsDuplicate(err) {
			return models.Category{}, apperr.Conflict("Category with this name already exists")
		}
		return models.Category{}, apperr.Internal("Failed to create category", err)
	}
	return c, nil
}

// Update renames or re-describes a category.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, apperr.Validation("Invalid category id")
	}
	if err := in.check(); err != nil {
		return models.Category{}, err
	}
	taken, err := s.categories.NameTaken(ctx, in.Name, oid)
	if err != nil {
		return models.Category{}, apperr.Internal("Failed to update category", err)
	}
	if taken {
		return models.Category{}, apperr.Conflict("Category with this name already exists")
	}

	c, err := s.categories.Update(ctx, oid, bson.M{
		"name":        in.Name,
		"description": in.Description,
	})
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Category{}, apperr.NotFound("Category")
		}
		return models.Category{}, apperr.Internal("Failed to update category", err)
	}
	return c, nil
}

// Delete removes a category, refusing while products still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("Invalid category id")
	}

	n, err := s.products.CountByCategory(ctx, oid)
	if err != nil {
		return apperr.Internal("Failed to delete category", err)
	}
	if n > 0 {
		return apperr.Conflict("Cannot delete category: %d product(s) still use it", n)
	}

	if err := s.categories.Delete(ctx, oid); err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("Category")
		}
		return apperr.Internal("Failed to delete category", err)
	}
	return nil
}
