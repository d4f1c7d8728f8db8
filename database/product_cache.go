package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"store-service/logger"
	"store-service/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ProductFinder is the catalog lookup used by the cart service.
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CachedProductRepository is a read-through Redis cache in front of the
// catalog. Cache failures degrade to the backing lookup.
type CachedProductRepository struct {
	inner  ProductFinder
	client *redis.Client
	ttl    time.Duration
}

func NewCachedProductRepository(inner ProductFinder, client *redis.Client, ttl time.Duration) *CachedProductRepository {
	return &CachedProductRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func (r *CachedProductRepository) getKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := r.getKey(id)

	data, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if err := json.Unmarshal([]byte(data), &product); err == nil {
			return &product, nil
		}
	} else if err != redis.Nil {
		logger.Warn(ctx, "product cache read failed", zap.String("key", key), zap.Error(err))
	}

	product, err := r.inner.FindByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	if encoded, err := json.Marshal(product); err == nil {
		if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
			logger.Warn(ctx, "product cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return product, nil
}
