package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/core/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
)

// --- Test Suite ---
type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo  *MockProductRepository
	mockUserRepo     *MockUserRepository
	mockPurchaseRepo *MockPurchaseRepository
	service          portssvc.ProductSvcFacade

	seller *domain.User
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.service = services.NewProductService(suite.mockProductRepo, suite.mockUserRepo, suite.mockPurchaseRepo)

	suite.seller = &domain.User{
		UserID:   uuid.NewString(),
		Username: "seller1",
		Roles:    []domain.Role{domain.RoleSeller},
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:     "Sparkling Water",
		Price:    decimal.NewFromFloat(0.65),
		Quantity: 10,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByName", ctx, req.Name).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(product domain.Product) bool {
		return product.Name == req.Name && product.SellerID == suite.seller.UserID && product.IsActive
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.seller.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.True(product.Price.Equal(req.Price))
	suite.NotEmpty(product.ProductID)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NotASeller() {
	ctx := context.Background()
	buyer := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleBuyer}}
	req := dto.CreateProductRequest{Name: "Water", Price: decimal.NewFromFloat(0.65), Quantity: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, buyer.UserID).Return(buyer, nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, buyer.UserID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_PriceBelowMinimum() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Name: "Free Water", Price: decimal.Zero, Quantity: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.seller.UserID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_SubCentPrice() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Name: "Odd Water", Price: decimal.NewFromFloat(0.655), Quantity: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.seller.UserID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NameTaken() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Name: "Water", Price: decimal.NewFromFloat(0.65), Quantity: 1}
	existing := &domain.Product{ProductID: uuid.NewString(), Name: req.Name}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByName", ctx, req.Name).Return(existing, nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.seller.UserID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestGetProductByID_DelistedIsNotFound() {
	ctx := context.Background()
	productID := uuid.NewString()
	delisted := &domain.Product{ProductID: productID, IsActive: false}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(delisted, nil).Once()

	product, err := suite.service.GetProductByID(ctx, productID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_OtherSellersProduct() {
	ctx := context.Background()
	productID := uuid.NewString()
	newPrice := decimal.NewFromFloat(0.70)
	othersProduct := &domain.Product{
		ProductID: productID,
		SellerID:  uuid.NewString(),
		IsActive:  true,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(othersProduct, nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Price: &newPrice}, suite.seller.UserID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_Success() {
	ctx := context.Background()
	productID := uuid.NewString()
	newQuantity := int64(25)
	owned := &domain.Product{
		ProductID: productID,
		Name:      "Water",
		Price:     decimal.NewFromFloat(0.65),
		Quantity:  10,
		SellerID:  suite.seller.UserID,
		IsActive:  true,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(owned, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(product domain.Product) bool {
		return product.Quantity == newQuantity && product.LastUpdatedBy == suite.seller.UserID
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Quantity: &newQuantity}, suite.seller.UserID)

	suite.Require().NoError(err)
	suite.Equal(newQuantity, product.Quantity)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_PurchasedIsDelisted() {
	ctx := context.Background()
	productID := uuid.NewString()
	owned := &domain.Product{ProductID: productID, SellerID: suite.seller.UserID, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(owned, nil).Once()
	suite.mockPurchaseRepo.On("HasPurchasesForProduct", ctx, productID).Return(true, nil).Once()
	suite.mockProductRepo.On("MarkProductInactive", ctx, productID, suite.seller.UserID).Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, productID, suite.seller.UserID)

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "DeleteProduct", mock.Anything, mock.Anything)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NeverPurchasedIsRemoved() {
	ctx := context.Background()
	productID := uuid.NewString()
	owned := &domain.Product{ProductID: productID, SellerID: suite.seller.UserID, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(suite.seller, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(owned, nil).Once()
	suite.mockPurchaseRepo.On("HasPurchasesForProduct", ctx, productID).Return(false, nil).Once()
	suite.mockProductRepo.On("DeleteProduct", ctx, productID).Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, productID, suite.seller.UserID)

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "MarkProductInactive", mock.Anything, mock.Anything, mock.Anything)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
