// Package transfer contiene la lógica pura del ciclo de vida de traslados:
// tabla de transiciones legales y cálculo de discrepancias. Sin dependencias
// de persistencia.
package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// legalTransitions tabla de transiciones permitidas del agregado.
// PENDING → SHIPPED → RECEIVED, o PENDING → CANCELLED. Nada más.
var legalTransitions = map[string][]string{
	entity.TransferStatusPending:   {entity.TransferStatusShipped, entity.TransferStatusCancelled},
	entity.TransferStatusShipped:   {entity.TransferStatusReceived},
	entity.TransferStatusReceived:  {},
	entity.TransferStatusCancelled: {},
}

// CanTransition indica si la transición from → to es legal.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	return len(legalTransitions[status]) == 0
}

// ValidStatus indica si el string corresponde a un estado conocido.
func ValidStatus(status string) bool {
	_, ok := legalTransitions[status]
	return ok
}

// LineDiscrepancy es la diferencia por línea entre lo despachado y lo
// físicamente recibido. Positiva = faltante, negativa = sobrante, cero = exacto.
// Es informativa para auditoría, nunca bloquea la recepción.
type LineDiscrepancy struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	Unit             string          `json:"unit"`
	QuantityShipped  decimal.Decimal `json:"quantity_shipped"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	Difference       decimal.Decimal `json:"difference"`
}

// Discrepancies calcula la discrepancia por línea de un traslado recibido.
// Las líneas sin cantidades despachada y recibida (traslado aún en curso)
// se omiten.
func Discrepancies(t *entity.StockTransfer) []LineDiscrepancy {
	out := make([]LineDiscrepancy, 0, len(t.Items))
	for _, item := range t.Items {
		if item.QuantityShipped == nil || item.QuantityReceived == nil {
			continue
		}
		out = append(out, LineDiscrepancy{
			IngredientID:     item.IngredientID,
			IngredientName:   item.IngredientName,
			Unit:             item.Unit,
			QuantityShipped:  *item.QuantityShipped,
			QuantityReceived: *item.QuantityReceived,
			Difference:       item.QuantityShipped.Sub(*item.QuantityReceived),
		})
	}
	return out
}
