package entity

import "time"

// Ingredient representa un insumo del catálogo (identidad y unidad de medida).
// El nombre y la unidad se denormalizan en las líneas de traslado al momento
// de crear la solicitud, para estabilidad de visualización.
type Ingredient struct {
	ID        string
	Name      string
	Unit      string // kg, g, l, und, etc.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
