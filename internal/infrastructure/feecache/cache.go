// Package feecache memoizes the fee levels returned by a
// ports.FeeLevelProvider.
package feecache

import (
	"context"
	"fmt"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	cache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultExpiration is the lifetime of cached fee levels.
	DefaultExpiration = time.Minute
	cleanupInterval   = 10 * time.Minute
)

type provider struct {
	provider ports.FeeLevelProvider
	cache    *cache.Cache
}

// New wraps the given provider with a cache. Empty results are not cached.
func New(p ports.FeeLevelProvider, expiration time.Duration) ports.FeeLevelProvider {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &provider{p, cache.New(expiration, cleanupInterval)}
}

func (p *provider) GetFeeLevels(
	ctx context.Context, coin, network string,
) ([]domain.FeeLevel, error) {
	k := fmt.Sprintf("%s:%s", coin, network)
	if v, ok := p.cache.Get(k); ok {
		return v.([]domain.FeeLevel), nil
	}

	levels, err := p.provider.GetFeeLevels(ctx, coin, network)
	if err != nil {
		return nil, err
	}
	if len(levels) > 0 {
		p.cache.Set(k, levels, cache.DefaultExpiration)
		log.Debugf("cached %d fee levels for %s", len(levels), k)
	}
	return levels, nil
}
