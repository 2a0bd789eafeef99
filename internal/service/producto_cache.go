package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/glYohanny/Gucci/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ProductoCache keeps product-by-codigo lookups in Redis. A nil cache or a
// nil client turns every method into a no-op.
type ProductoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductoCache(rdb *redis.Client, ttl time.Duration) *ProductoCache {
	return &ProductoCache{rdb: rdb, ttl: ttl}
}

func productoKey(codigo string) string { return "producto:codigo:" + codigo }

func (c *ProductoCache) activo() bool { return c != nil && c.rdb != nil }

func (c *ProductoCache) Get(ctx context.Context, codigo string) (*dto.ProductoInfo, bool) {
	if !c.activo() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, productoKey(codigo)).Bytes()
	if err != nil {
		return nil, false
	}
	var info dto.ProductoInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, false
	}
	return &info, true
}

// Set is best effort; failures are logged and ignored.
func (c *ProductoCache) Set(ctx context.Context, info *dto.ProductoInfo) {
	if !c.activo() {
		return
	}
	b, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productoKey(info.Codigo), b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("codigo", info.Codigo).Msg("producto cache: set failed")
	}
}

func (c *ProductoCache) Invalidar(ctx context.Context, codigos ...string) {
	if !c.activo() || len(codigos) == 0 {
		return
	}
	keys := make([]string, len(codigos))
	for i, codigo := range codigos {
		keys[i] = productoKey(codigo)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("codigos", codigos).Msg("producto cache: invalidate failed")
	}
}
