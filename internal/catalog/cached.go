package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fitquality/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CachedRepository layers the product-list cache over an inner repository.
// Stock reads and decrements always go to the inner repository; checkout
// must never see cached stock.
type CachedRepository struct {
	inner Repository
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCachedRepository(inner Repository, cache ProductCache) *CachedRepository {
	return &CachedRepository{
		inner: inner,
		cache: cache,
	}
}

func (c *CachedRepository) Products(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := c.sfg.Do(productListKey, func() (interface{}, error) {
		products, err := c.cache.Get(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("product cache get error: %v", err) // log cache error but continue
		}

		products, errGet := c.inner.Products(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := c.cache.Set(context.Background(), products); errSet != nil {
				log.Printf("product cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

func (c *CachedRepository) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return c.inner.Product(ctx, id)
}

func (c *CachedRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := c.inner.CreateProduct(ctx, p); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *CachedRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := c.inner.UpdateProduct(ctx, p); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *CachedRepository) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.inner.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *CachedRepository) CurrentStock(ctx context.Context, id int64) (int, error) {
	return c.inner.CurrentStock(ctx, id)
}

func (c *CachedRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	if err := c.inner.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *CachedRepository) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.cache.Invalidate(ctx); err != nil {
		log.Printf("product cache invalidate error: %v", err)
	}
}
