package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// minPrice is the lowest listable price, one cent.
var minPrice = decimal.NewFromFloat(0.01)

// productService provides seller-facing catalog management and public reads.
type productService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	purchaseRepo portsrepo.PurchaseReader
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, purchaseRepo portsrepo.PurchaseReader) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, userRepo: userRepo, purchaseRepo: purchaseRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func validatePrice(price decimal.Decimal) error {
	if price.LessThan(minPrice) {
		return fmt.Errorf("%w: price must be at least %s", apperrors.ErrValidation, minPrice.StringFixed(2))
	}
	if price.Exponent() < -2 {
		return fmt.Errorf("%w: price must have at most 2 decimal places", apperrors.ErrValidation)
	}
	return nil
}

// requireSeller loads the acting user and checks the seller role.
func (s *productService) requireSeller(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if !user.IsSeller() {
		return nil, fmt.Errorf("only sellers can manage products: %w", apperrors.ErrForbidden)
	}
	return user, nil
}

// CreateProduct lists a new product owned by the acting seller.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, sellerID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireSeller(ctx, sellerID); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
	}

	existing, err := s.productRepo.FindProductByName(ctx, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check product name availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("product name %q is taken: %w", req.Name, apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      req.Name,
		Price:     req.Price.Round(2),
		Quantity:  req.Quantity,
		SellerID:  sellerID,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sellerID,
			LastUpdatedAt: now,
			LastUpdatedBy: sellerID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save product", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %s is delisted: %w", productID, apperrors.ErrNotFound)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.FindActiveProducts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update to a product owned by the acting seller.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireSeller(ctx, requestingUserID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if product.SellerID != requestingUserID {
		return nil, fmt.Errorf("product %s belongs to another seller: %w", productID, apperrors.ErrForbidden)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %s is delisted: %w", productID, apperrors.ErrNotFound)
	}

	if req.Name != nil && *req.Name != product.Name {
		existing, err := s.productRepo.FindProductByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check product name availability: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("product name %q is taken: %w", *req.Name, apperrors.ErrDuplicate)
		}
		product.Name = *req.Name
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = req.Price.Round(2)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
		}
		product.Quantity = *req.Quantity
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = requestingUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

// DeleteProduct removes a product owned by the acting seller. A product that
// settled purchases reference is delisted instead, so every purchase row keeps
// a valid product reference; a never-purchased product is removed outright.
func (s *productService) DeleteProduct(ctx context.Context, productID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireSeller(ctx, requestingUserID); err != nil {
		return err
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if product.SellerID != requestingUserID {
		return fmt.Errorf("product %s belongs to another seller: %w", productID, apperrors.ErrForbidden)
	}

	purchased, err := s.purchaseRepo.HasPurchasesForProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to check purchase references", slog.String("error", err.Error()), slog.String("product_id", productID))
		return fmt.Errorf("failed to check purchase references for product %s: %w", productID, err)
	}

	if !purchased {
		if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
			}
			return err
		}
		logger.Info("Product deleted", slog.String("product_id", productID))
		return nil
	}

	if err := s.productRepo.MarkProductInactive(ctx, productID, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delist product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return err
	}

	logger.Info("Product delisted", slog.String("product_id", productID))
	return nil
}
