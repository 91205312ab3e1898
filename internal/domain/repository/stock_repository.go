package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para el libro de existencias
// por outlet e insumo (DIP).
type StockRepository interface {
	// Get obtiene la existencia actual; si no hay fila devuelve cantidad cero.
	Get(outletID, ingredientID string) (*entity.Stock, error)
	// GetForUpdate obtiene la existencia bloqueando la fila para la transacción
	// en curso (SELECT FOR UPDATE). Si la fila no existe la crea con cantidad
	// cero antes de bloquearla. Solo tiene sentido dentro de una tx.
	GetForUpdate(outletID, ingredientID string) (*entity.Stock, error)
	// Upsert inserta o reemplaza la cantidad de la fila.
	Upsert(stock *entity.Stock) error
	// ListByOutlet lista las existencias de un outlet con paginación.
	ListByOutlet(outletID string, limit, offset int) ([]*entity.Stock, error)
}
