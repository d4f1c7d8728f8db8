package database

import (
	"context"
	"errors"
	"time"

	"store-service/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository persists carts, one document per user. The mutation
// methods are conditional single-document updates so that concurrent
// requests cannot interleave a read with a stale write.
type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		collection: db.Collection("carts"),
	}
}

// EnsureIndexes creates the unique index enforcing one cart per user.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByUserID returns the user's cart, or nil when none exists.
func (r *CartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a fresh cart for the user. The unique index on
// user_id rejects a concurrent duplicate create.
func (r *CartRepository) Create(ctx context.Context, userID uuid.UUID, items []models.CartItem) (*models.Cart, error) {
	cart := &models.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     items,
		UpdatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends item only if no item with the same product ID is
// already in the cart. Returns the updated cart, or nil when the
// guard did not match (cart absent or product already present).
func (r *CartRepository) AddItem(ctx context.Context, userID uuid.UUID, item models.CartItem) (*models.Cart, error) {
	filter := bson.M{
		"user_id":           userID,
		"items.product._id": bson.M{"$ne": item.Product.ID},
	}
	update := bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// UpdateItemQuantity overwrites the quantity of the matching item in
// place. Returns nil when the cart has no item for productID.
func (r *CartRepository) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	filter := bson.M{
		"user_id":           userID,
		"items.product._id": productID,
	}
	update := bson.M{
		"$set": bson.M{
			"items.$.quantity": quantity,
			"updated_at":       time.Now(),
		},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// RemoveItem pulls the matching item out of the cart. Returns nil when
// the cart has no item for productID. The cart document itself stays.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	filter := bson.M{
		"user_id":           userID,
		"items.product._id": productID,
	}
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"product._id": productID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// ClearItems empties the cart's item list without deleting the cart.
func (r *CartRepository) ClearItems(ctx context.Context, userID uuid.UUID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CartRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
