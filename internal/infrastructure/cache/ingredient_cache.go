// Package cache implementa un cache-aside sobre Redis para el catálogo de
// insumos: la resolución de nombre/unidad ocurre en cada solicitud de
// traslado y el catálogo cambia poco.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

var _ repository.IngredientRepository = (*IngredientCache)(nil)

const ingredientTTL = 10 * time.Minute

// IngredientCache decora un IngredientRepository con cache-aside en Redis.
// Un fallo de Redis degrada a leer directo del repositorio interno.
type IngredientCache struct {
	inner  repository.IngredientRepository
	client *redis.Client
	log    *logger.Logger
}

// NewIngredientCache construye el decorador.
func NewIngredientCache(inner repository.IngredientRepository, client *redis.Client, log *logger.Logger) *IngredientCache {
	return &IngredientCache{inner: inner, client: client, log: log}
}

func cacheKey(id string) string {
	return "ingredient:" + id
}

// GetByID intenta el cache primero; en miss lee del repositorio y guarda.
func (c *IngredientCache) GetByID(id string) (*entity.Ingredient, error) {
	ctx := context.Background()
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var ingredient entity.Ingredient
		if err := json.Unmarshal(data, &ingredient); err == nil {
			return &ingredient, nil
		}
		// Entrada corrupta: se descarta y se relee del repositorio.
		c.client.Del(ctx, cacheKey(id))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("ingredient_id", id).Msg("cache de insumos no disponible")
	}

	ingredient, err := c.inner.GetByID(id)
	if err != nil || ingredient == nil {
		return ingredient, err
	}
	if data, err := json.Marshal(ingredient); err == nil {
		if err := c.client.Set(ctx, cacheKey(id), data, ingredientTTL).Err(); err != nil {
			c.log.Warn().Err(err).Str("ingredient_id", id).Msg("no se pudo guardar insumo en cache")
		}
	}
	return ingredient, nil
}

// Create delega y no toca el cache (aún no hay entrada).
func (c *IngredientCache) Create(ingredient *entity.Ingredient) error {
	return c.inner.Create(ingredient)
}

// Update delega e invalida la entrada cacheada.
func (c *IngredientCache) Update(ingredient *entity.Ingredient) error {
	if err := c.inner.Update(ingredient); err != nil {
		return err
	}
	if err := c.client.Del(context.Background(), cacheKey(ingredient.ID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("ingredient_id", ingredient.ID).Msg("no se pudo invalidar insumo en cache")
	}
	return nil
}

// List delega siempre al repositorio (los listados paginados no se cachean).
func (c *IngredientCache) List(limit, offset int) ([]*entity.Ingredient, error) {
	return c.inner.List(limit, offset)
}
