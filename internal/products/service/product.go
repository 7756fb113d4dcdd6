package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	productserrors "blinktech/internal/products/errors"
	"blinktech/internal/products/repository"
	"blinktech/internal/products/validator"
	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

// UpdateAck is the store acknowledgment surfaced by Update; the updated
// document itself is not returned.
type UpdateAck struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type ProductService interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, search string, order string) ([]*model.Product, error)
	Update(ctx context.Context, id string, updates *model.ProductUpdate) (*UpdateAck, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo      repository.ProductRepository
	validator *validator.ProductValidator
	cfg       *config.Config
}

func NewProductService(
	repo repository.ProductRepository,
	validator *validator.ProductValidator,
	cfg *config.Config,
) ProductService {
	return &productService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *productService) Create(ctx context.Context, product *model.Product) error {
	product.Name = sanitizer.NormalizeName(product.Name)
	product.Category = sanitizer.NormalizeName(product.Category)

	if err := s.validator.Validate(product); err != nil {
		s.cfg.Log.Warn("Product validation failed", "error", err)
		return apperrors.Validation("Product validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.cfg.Log.Error("Failed to create product", "error", err)
		return apperrors.Internal("Failed to create product", err)
	}

	s.cfg.Log.Info("Product created successfully", "id", product.ID, "name", product.Name)
	return nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, productserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Product", id)
		}
		if errors.Is(err, productserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid product ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve product", err)
	}

	return product, nil
}

// List returns products sorted by price. order "asc" sorts ascending; any
// other value sorts descending, matching the public API contract.
func (s *productService) List(ctx context.Context, search string, order string) ([]*model.Product, error) {
	sortOrder := repository.SortDescending
	if order == "asc" {
		sortOrder = repository.SortAscending
	}

	search = sanitizer.NormalizeSearchTerm(search)

	products, err := s.repo.FindAll(ctx, search, sortOrder, 0, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to list products", "search", search, "error", err)
		return nil, apperrors.Internal("Failed to retrieve products", err)
	}

	return products, nil
}

func (s *productService) Update(ctx context.Context, id string, updates *model.ProductUpdate) (*UpdateAck, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Product update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	fields := buildUpdateFields(updates)
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("No updatable fields provided")
	}

	result, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, productserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid product ID format")
		}
		s.cfg.Log.Error("Failed to update product", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update product", err)
	}

	ack := ackFromResult(result)
	s.cfg.Log.Info("Product updated successfully", "id", id, "modified", ack.ModifiedCount, "upserted", ack.UpsertedCount)
	return ack, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Product ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, productserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Product", id)
		}
		if errors.Is(err, productserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid product ID format")
		}
		s.cfg.Log.Error("Failed to delete product", "id", id, "error", err)
		return apperrors.Internal("Failed to delete product", err)
	}

	s.cfg.Log.Info("Product deleted successfully", "id", id)
	return nil
}

func buildUpdateFields(updates *model.ProductUpdate) bson.M {
	fields := bson.M{}

	if updates.Name != "" {
		fields["name"] = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Category != "" {
		fields["category"] = sanitizer.NormalizeName(updates.Category)
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Price != nil {
		fields["price"] = *updates.Price
	}
	if updates.Discount != nil {
		fields["discount"] = *updates.Discount
	}
	if updates.Image != nil {
		fields["image"] = *updates.Image
	}
	if updates.Rating != nil {
		fields["rating"] = *updates.Rating
	}
	if updates.Trending != nil {
		fields["trending"] = *updates.Trending
	}
	if updates.Promoted != nil {
		fields["promoted"] = *updates.Promoted
	}

	return fields
}

func ackFromResult(result *mongo.UpdateResult) *UpdateAck {
	ack := &UpdateAck{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
	}
	if oid, ok := result.UpsertedID.(interface{ Hex() string }); ok {
		ack.UpsertedID = oid.Hex()
	}
	return ack
}
