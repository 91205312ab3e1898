package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// IngredientRepository define el puerto de persistencia para el catálogo de insumos (DIP).
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	List(limit, offset int) ([]*entity.Ingredient, error)
}
