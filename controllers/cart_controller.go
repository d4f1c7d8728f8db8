package controllers

import (
	"context"
	"net/http"

	"store-service/errors"
	"store-service/logger"
	"store-service/middleware"
	"store-service/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ICartService is the cart operations surface used by the controller.
type ICartService interface {
	GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddProductToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateProductInCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
	DeleteProductFromCart(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type CartController struct {
	service ICartService
}

func NewCartController(service ICartService) *CartController {
	return &CartController{service: service}
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// GetCart returns the current cart for the authenticated user
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cart, err := cc.service.GetCartByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the cart, creating the cart if needed
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.service.AddProductToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem overwrites the quantity of a product already in the cart
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.service.UpdateProductInCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes a specific product from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cart, err := cc.service.DeleteProductFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Checkout debits the wallet and empties the cart
func (cc *CartController) Checkout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cart, err := cc.service.Checkout(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// respondError surfaces application errors with their status and fixed
// message; everything else becomes a logged 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.Error); ok {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(c, appErr.Message, appErr.Err)
		}
		c.JSON(appErr.Code, appErr)
		return
	}
	logger.Error(c, "unexpected error", err, zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, errors.ErrInternalServer)
}
