package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"dataware/internal/caching"
	"dataware/internal/models"
	"dataware/internal/repositories"

	"github.com/google/uuid"
)

const productCacheTTL = 15 * time.Minute

type ProductService interface {
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Product, error)
	SearchByName(ctx context.Context, name string) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

func (s *productService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if req.Name == nil {
		return nil, newValidationError("name", "product name is required")
	}
	if req.Price == nil {
		return nil, newValidationError("price", "product price is required")
	}
	if req.Categories == nil {
		return nil, newValidationError("categories", "categories are required")
	}
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        *req.Name,
		Description: req.Description,
		Categories:  *req.Categories,
	}
	product.SetPrice(*req.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	// Try to get from cache first
	if cachedProduct, err := s.cacheService.GetProduct(ctx, id); cachedProduct != nil {
		return cachedProduct, nil
	} else if err != nil {
		log.Printf("WARN: cache error for product %s: %v", id, err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, productStoreError(id, err)
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, productCacheTTL); cacheErr != nil {
		log.Printf("WARN: failed to cache product %s: %v", id, cacheErr)
	}
	return product, nil
}

// Update applies only the fields present in req.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, productStoreError(id, err)
	}
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.SetPrice(*req.Price)
	}
	if req.Categories != nil {
		product.Categories = *req.Categories
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, productStoreError(id, err)
	}
	s.invalidate(ctx, id)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return productStoreError(id, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return products, nil
}

func (s *productService) SearchByName(ctx context.Context, name string) ([]*models.Product, error) {
	if name == "" {
		return nil, newValidationError("name", "search name is required")
	}
	products, err := s.productRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return products, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("WARN: failed to invalidate cache for product %s: %v", id, cacheErr)
	}
}

func productStoreError(id uuid.UUID, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// validateProductRequest checks every field that is present.
func validateProductRequest(req *models.ProductRequest) error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return newValidationError("name", "product name is required")
		}
		if n := utf8.RuneCountInString(*req.Name); n < 3 || n > 255 {
			return newValidationError("name", "product name must be between 3 and 255 characters")
		}
	}
	if req.Description != nil && utf8.RuneCountInString(*req.Description) > 1000 {
		return newValidationError("description", "description cannot exceed 1000 characters")
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return newValidationError("price", "price must be positive")
		}
		if *req.Price > models.MaxPriceCents {
			return newValidationError("price", "price cannot exceed %d cents", models.MaxPriceCents)
		}
		cents := models.CentsFromPrice(*req.Price)
		if cents <= 0 {
			return newValidationError("price", "price must be at least 0.01")
		}
		if cents > models.MaxPriceCents {
			return newValidationError("price", "price cannot exceed %d cents", models.MaxPriceCents)
		}
	}
	if req.Categories != nil {
		if len(*req.Categories) == 0 {
			return newValidationError("categories", "at least one category is required")
		}
		for i, category := range *req.Categories {
			if strings.TrimSpace(category) == "" {
				return newValidationError(fmt.Sprintf("categories[%d]", i), "category cannot be blank")
			}
			if utf8.RuneCountInString(category) > 100 {
				return newValidationError(fmt.Sprintf("categories[%d]", i), "category cannot exceed 100 characters")
			}
		}
	}
	return nil
}
