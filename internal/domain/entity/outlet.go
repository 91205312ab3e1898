package entity

import "time"

// Roles de punto de venta dentro de la red de la empresa.
const (
	OutletRoleBranch  = "branch"  // sucursal: solicita y recibe traslados
	OutletRoleCentral = "central" // bodega central: despacha traslados
)

// Outlet representa un punto de venta o la bodega central de la red (multi-sucursal).
type Outlet struct {
	ID        string
	Name      string
	Role      string // branch | central
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCentral indica si el outlet cumple el rol de bodega central.
func (o *Outlet) IsCentral() bool {
	return o.Role == OutletRoleCentral
}
