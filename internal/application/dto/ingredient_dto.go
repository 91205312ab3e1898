package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest cuerpo para crear un insumo del catálogo.
type CreateIngredientRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// UpdateIngredientRequest cuerpo para actualizar un insumo (campos opcionales).
type UpdateIngredientRequest struct {
	Name   *string `json:"name"`
	Unit   *string `json:"unit"`
	Active *bool   `json:"active"`
}

// IngredientResponse representación de un insumo en respuestas.
type IngredientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IngredientListResponse página de insumos.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// StockResponse existencia de un insumo en un outlet.
type StockResponse struct {
	OutletID     string          `json:"outlet_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse página de existencias de un outlet.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
