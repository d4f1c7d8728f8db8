package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"store-service/errors"
	"store-service/logger"
	"store-service/middleware"
	"store-service/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("development")
	os.Exit(m.Run())
}

// --- Mock Service ---

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartService) AddProductToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartService) UpdateProductInCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartService) DeleteProductFromCart(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

// newCartRouter wires the controller behind a stub auth middleware that
// injects userID directly.
func newCartRouter(svc *MockCartService, userID uuid.UUID) *gin.Engine {
	controller := NewCartController(svc)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	router.GET("/cart", controller.GetCart)
	router.POST("/cart/add", controller.AddItem)
	router.PUT("/cart/update", controller.UpdateItem)
	router.DELETE("/cart/remove/:product_id", controller.RemoveItem)
	router.POST("/cart/checkout", controller.Checkout)
	return router
}

// --- Tests ---

func TestGetCartController(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockCartService)
		cart := &models.Cart{ID: uuid.New(), UserID: userID}
		mockService.On("GetCartByUser", mock.Anything, userID).Return(cart, nil).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/cart", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("No Cart - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("GetCartByUser", mock.Anything, userID).Return(nil, errors.NotFound("User does not have a cart")).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/cart", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User does not have a cart")
	})
}

func TestAddItemController(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockCartService)
		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{{Quantity: 2}}}
		mockService.On("AddProductToCart", mock.Anything, userID, productID, 2).Return(cart, nil).Once()
		router := newCartRouter(mockService, userID)

		body, _ := json.Marshal(gin.H{"product_id": productID, "quantity": 2})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Duplicate Product - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("AddProductToCart", mock.Anything, userID, productID, 1).
			Return(nil, errors.InvalidRequest("Product already in cart...")).Once()
		router := newCartRouter(mockService, userID)

		body, _ := json.Marshal(gin.H{"product_id": productID, "quantity": 1})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Product already in cart...")
	})

	t.Run("Invalid Payload - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/add", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AddProductToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemoveItemController(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Invalid Product ID - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/cart/remove/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockCartService)
		emptied := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{}}
		mockService.On("DeleteProductFromCart", mock.Anything, userID, productID).Return(emptied, nil).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/cart/remove/"+productID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCheckoutController(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockCartService)
		emptied := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{}}
		mockService.On("Checkout", mock.Anything, userID).Return(emptied, nil).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/checkout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Insufficient Balance - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("Checkout", mock.Anything, userID).
			Return(nil, errors.InvalidRequest("Insufficient balance")).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/checkout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient balance")
	})

	t.Run("Cart Not Found - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("Checkout", mock.Anything, userID).
			Return(nil, errors.NotFound("Cart not found")).Once()
		router := newCartRouter(mockService, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cart/checkout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
