package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un traslado entre outlets.
const (
	TransferStatusPending   = "PENDING"   // solicitado por la sucursal, aún sin despachar
	TransferStatusShipped   = "SHIPPED"   // despachado por la central (stock central debitado)
	TransferStatusReceived  = "RECEIVED"  // recibido por la sucursal (stock sucursal acreditado)
	TransferStatusCancelled = "CANCELLED" // anulado antes del despacho; nunca tocó inventario
)

// StockTransferItem es una línea de traslado. Nombre y unidad se denormalizan
// del catálogo al crear la solicitud. Cada cantidad la escribe una sola etapa:
// QuantityRequested la solicitud, QuantityShipped el despacho, QuantityReceived
// la recepción; una vez escritas no se modifican.
type StockTransferItem struct {
	ID                string
	TransferID        string
	IngredientID      string
	IngredientName    string
	Unit              string
	QuantityRequested decimal.Decimal
	QuantityShipped   *decimal.Decimal // nil hasta el despacho
	QuantityReceived  *decimal.Decimal // nil hasta la recepción
	Position          int
}

// StockTransfer es el agregado de un traslado de stock: la sucursal
// (TargetOutletID) solicita, la central (SourceOutletID) despacha y la
// sucursal concilia lo recibido. Version respalda el control optimista de
// concurrencia: toda transición exige la versión leída y la incrementa.
type StockTransfer struct {
	ID             string
	SourceOutletID string // central que despacha
	TargetOutletID string // sucursal que solicita
	Status         string
	Version        int64

	RequestDate time.Time
	ShipDate    *time.Time
	ReceiveDate *time.Time
	CancelledAt *time.Time

	RequestedBy string
	ShippedBy   string
	ReceivedBy  string
	CancelledBy string

	Carrier      string // transportador (opcional)
	TrackingRef  string // guía o referencia de envío (opcional)
	CancelReason string

	Items []StockTransferItem
}

// ItemByIngredient devuelve la línea del insumo indicado, o nil si no existe.
func (t *StockTransfer) ItemByIngredient(ingredientID string) *StockTransferItem {
	for i := range t.Items {
		if t.Items[i].IngredientID == ingredientID {
			return &t.Items[i]
		}
	}
	return nil
}
