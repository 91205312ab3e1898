package dto

import "time"

// CreateOutletRequest cuerpo para crear un outlet.
type CreateOutletRequest struct {
	Name    string `json:"name"`
	Role    string `json:"role"` // branch | central
	Address string `json:"address"`
}

// UpdateOutletRequest cuerpo para actualizar un outlet (campos opcionales).
type UpdateOutletRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// OutletResponse representación de un outlet en respuestas.
type OutletResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OutletListResponse página de outlets.
type OutletListResponse struct {
	Items []OutletResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
