package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// TransferFilter criterios de consulta para el listado de traslados.
// Role decide desde qué lado se filtra: una sucursal ve los traslados donde es
// destino; la central los que despacha.
type TransferFilter struct {
	OutletID   string
	Role       string // branch | central
	Status     string // opcional
	SearchTerm string // opcional: ID del traslado o nombre de insumo
}

// TransferRepository define el puerto de persistencia para el agregado
// StockTransfer (DIP). Las operaciones Mark* aplican una transición con
// precondición optimista (estado y versión leídos): si otra llamada ganó la
// carrera, devuelven domain.ErrConflict y no escriben nada.
type TransferRepository interface {
	// Create persiste el agregado completo (cabecera + líneas).
	Create(transfer *entity.StockTransfer) error
	// GetByID obtiene el agregado con sus líneas; nil si no existe.
	GetByID(id string) (*entity.StockTransfer, error)
	// ListPending lista traslados PENDING de una central, por fecha de
	// solicitud ascendente (orden de atención).
	ListPending(fulfillerOutletID string, limit, offset int) ([]*entity.StockTransfer, error)
	// List lista traslados según filtro, por fecha de solicitud descendente.
	List(filter TransferFilter, limit, offset int) ([]*entity.StockTransfer, error)

	// MarkShipped escribe PENDING→SHIPPED: cantidades despachadas, fecha,
	// actor y datos de transporte, con precondición status=PENDING y la
	// versión del agregado leído.
	MarkShipped(transfer *entity.StockTransfer) error
	// MarkReceived escribe SHIPPED→RECEIVED: cantidades recibidas, fecha y
	// actor, con precondición status=SHIPPED y versión.
	MarkReceived(transfer *entity.StockTransfer) error
	// MarkCancelled escribe PENDING→CANCELLED con motivo y actor, con
	// precondición status=PENDING y versión.
	MarkCancelled(transfer *entity.StockTransfer) error
}
