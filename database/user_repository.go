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

// UserRepository persists user documents, including the wallet balance
// checkout debits.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByEmail returns the user, or nil when no account exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user, or nil when no account exists.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// HasNonDefaultAddress reports whether the user has configured at
// least one address beyond the default placeholder.
func (r *UserRepository) HasNonDefaultAddress(ctx context.Context, userID uuid.UUID) (bool, error) {
	filter := bson.M{
		"_id":       userID,
		"addresses": bson.M{"$elemMatch": bson.M{"default": false}},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	return count > 0, err
}

// AddAddress appends a shipping address to the user document.
func (r *UserRepository) AddAddress(ctx context.Context, userID uuid.UUID, addr models.Address) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"addresses": addr},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DebitWallet atomically subtracts amount from the user's wallet. The
// balance guard is part of the filter, so a concurrent debit can never
// push the wallet negative.
func (r *UserRepository) DebitWallet(ctx context.Context, userID uuid.UUID, amount float64) error {
	filter := bson.M{
		"_id":          userID,
		"wallet_money": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"wallet_money": -amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
