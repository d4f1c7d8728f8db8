package services

import (
	"context"
	"time"

	"store-service/errors"
	"store-service/logger"
	"store-service/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ICartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, userID uuid.UUID, items []models.CartItem) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, item models.CartItem) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	ClearItems(ctx context.Context, userID uuid.UUID) error
}

type IUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	HasNonDefaultAddress(ctx context.Context, userID uuid.UUID) (bool, error)
	DebitWallet(ctx context.Context, userID uuid.UUID, amount float64) error
}

type IProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type ICheckoutPublisher interface {
	SendCheckoutEvent(event models.CheckoutEvent) error
}

// ITransactor runs a function inside a storage transaction. Writes
// made through the supplied context commit together or not at all.
type ITransactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CartService owns the cart lifecycle: add, update, remove, checkout.
type CartService struct {
	cartRepo   ICartRepository
	userRepo   IUserRepository
	products   IProductLookup
	publisher  ICheckoutPublisher
	transactor ITransactor
}

func NewCartService(cr ICartRepository, ur IUserRepository, pl IProductLookup, pub ICheckoutPublisher, tx ITransactor) *CartService {
	return &CartService{
		cartRepo:   cr,
		userRepo:   ur,
		products:   pl,
		publisher:  pub,
		transactor: tx,
	}
}

// GetCartByUser returns the user's cart unchanged.
func (s *CartService) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.NotFound("User does not have a cart")
	}
	return cart, nil
}

// AddProductToCart puts a new product into the cart, creating the cart
// on first use. Adding a product that is already in the cart fails; it
// never merges quantities.
func (s *CartService) AddProductToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errors.InvalidRequest("Quantity must be a positive integer")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.InvalidRequest("Product doesn't exist in database")
	}

	item := models.CartItem{Product: *product, Quantity: quantity}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		created, err := s.cartRepo.Create(ctx, userID, []models.CartItem{item})
		if err != nil {
			return nil, errors.Internal("Failed to add product to cart", err)
		}
		return created, nil
	}

	// The push is guarded by product identity at the storage layer, so
	// two concurrent adds of the same product cannot both land.
	updated, err := s.cartRepo.AddItem(ctx, userID, item)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.InvalidRequest("Product already in cart...")
	}
	return updated, nil
}

// UpdateProductInCart overwrites the quantity of a product already in
// the cart.
func (s *CartService) UpdateProductInCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errors.InvalidRequest("Quantity must be a positive integer")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.InvalidRequest("User does not have a cart. Use POST to create cart and add a product")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.InvalidRequest("Product doesn't exist in database")
	}

	updated, err := s.cartRepo.UpdateItemQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.InvalidRequest("Product not in cart")
	}
	return updated, nil
}

// DeleteProductFromCart removes a single product from the cart. The
// cart document stays even when its last item is removed.
func (s *CartService) DeleteProductFromCart(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.InvalidRequest("User does not have a cart")
	}

	updated, err := s.cartRepo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.InvalidRequest("Product not in cart")
	}
	return updated, nil
}

// Checkout debits the user's wallet by the cart total and empties the
// cart. The two writes run in one transaction; either both commit or
// neither does. Preconditions are checked strictly in order.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.NotFound("Cart not found")
	}

	if len(cart.Items) == 0 {
		return nil, errors.InvalidRequest("Cart is Empty")
	}

	hasAddress, err := s.userRepo.HasNonDefaultAddress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasAddress {
		return nil, errors.InvalidRequest("Please set the default address")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NotFound("User not found")
	}

	total := cart.Total()
	if total > user.WalletMoney {
		return nil, errors.InvalidRequest("Insufficient balance")
	}

	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.DebitWallet(txCtx, userID, total); err != nil {
			return err
		}
		return s.cartRepo.ClearItems(txCtx, userID)
	})
	if err != nil {
		return nil, errors.Internal("Checkout failed", err)
	}

	s.publishCheckout(ctx, userID, cart.Items, total)

	cart.Items = []models.CartItem{}
	return cart, nil
}

// publishCheckout emits the post-commit event. Publish failures are
// logged, never surfaced: the checkout has already committed.
func (s *CartService) publishCheckout(ctx context.Context, userID uuid.UUID, items []models.CartItem, total float64) {
	if s.publisher == nil {
		return
	}
	event := models.CheckoutEvent{
		Event:     "checkout.completed",
		UserID:    userID,
		Items:     items,
		Total:     total,
		Timestamp: time.Now(),
	}
	if err := s.publisher.SendCheckoutEvent(event); err != nil {
		logger.Warn(ctx, "failed to publish checkout event",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
