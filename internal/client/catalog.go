package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ServiceListing is a sitter's offered service as owned by the catalog.
// Read-only from this side.
type ServiceListing struct {
	ServiceID    uint            `json:"service_id"`
	SitterID     uint            `json:"sitter_id"`
	ServiceType  string          `json:"service_type"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Availability bool            `json:"availability"`
}

type SitterProfile struct {
	SitterID       uint   `json:"sitter_id"`
	ApprovalStatus string `json:"approval_status"`
}

type CatalogClient interface {
	GetService(ctx context.Context, serviceID uint) (*ServiceListing, error)
	GetSitter(ctx context.Context, sitterID uint) (*SitterProfile, error)
}

type catalogClient struct {
	caller *Caller
}

func NewCatalogClient(caller *Caller) CatalogClient {
	return &catalogClient{caller: caller}
}

func (c *catalogClient) GetService(ctx context.Context, serviceID uint) (*ServiceListing, error) {
	var listing ServiceListing
	if err := c.caller.GetJSON(ctx, fmt.Sprintf("/services/%d", serviceID), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *catalogClient) GetSitter(ctx context.Context, sitterID uint) (*SitterProfile, error) {
	var profile SitterProfile
	if err := c.caller.GetJSON(ctx, fmt.Sprintf("/sitters/%d", sitterID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

const serviceCacheTTL = 5 * time.Minute

// cachedCatalog is a read-through Redis cache over a CatalogClient. Only
// service listings are cached; sitter approval is checked live because a
// stale approval would let a revoked sitter keep claiming jobs.
type cachedCatalog struct {
	inner CatalogClient
	rdb   *redis.Client
}

// NewCachedCatalog wraps inner with a Redis cache. A nil rdb returns inner
// unchanged so callers can degrade gracefully when Redis is absent.
func NewCachedCatalog(inner CatalogClient, rdb *redis.Client) CatalogClient {
	if rdb == nil {
		return inner
	}
	return &cachedCatalog{inner: inner, rdb: rdb}
}

func (c *cachedCatalog) GetService(ctx context.Context, serviceID uint) (*ServiceListing, error) {
	key := fmt.Sprintf("catalog:service:%d", serviceID)
	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var listing ServiceListing
		if err := json.Unmarshal([]byte(raw), &listing); err == nil {
			return &listing, nil
		}
	}

	listing, err := c.inner.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if body, err := json.Marshal(listing); err == nil {
		c.rdb.Set(ctx, key, body, serviceCacheTTL)
	}
	return listing, nil
}

func (c *cachedCatalog) GetSitter(ctx context.Context, sitterID uint) (*SitterProfile, error) {
	return c.inner.GetSitter(ctx, sitterID)
}
