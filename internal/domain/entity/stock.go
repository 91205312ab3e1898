package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un insumo en un outlet
// (fila del libro de inventario, clave outlet + insumo).
type Stock struct {
	OutletID     string
	IngredientID string
	Quantity     decimal.Decimal
	UpdatedAt    time.Time
}
