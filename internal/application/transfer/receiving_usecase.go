package transfer

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// ReceivingUseCase es el lado sucursal del cierre del flujo: registra lo que
// físicamente llegó, acredita el libro de existencias de la sucursal junto
// con la transición SHIPPED → RECEIVED y deja constancia de la discrepancia
// contra lo despachado.
type ReceivingUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	audit        AuditPublisher
	log          *logger.Logger
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	audit AuditPublisher,
	log *logger.Logger,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		audit:        audit,
		log:          log,
	}
}

// ReceiveShipment registra la recepción de un traslado despachado. En una
// sola transacción: verifica estado SHIPPED, acredita cada línea al stock de
// la sucursal por lo recibido, escribe cantidades recibidas y transiciona a
// RECEIVED. La discrepancia por línea (despachado − recibido) es informativa:
// se publica al log de actividad y se devuelve en la respuesta, pero nunca
// bloquea la transición. Un segundo intento concurrente sobre un traslado ya
// recibido falla con ErrConflict sin tocar el inventario.
func (uc *ReceivingUseCase) ReceiveShipment(ctx context.Context, transferID, actorID string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	byIngredient, err := linesByIngredient(in.Lines, true)
	if err != nil {
		return nil, err
	}

	var result *entity.StockTransfer
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error {
		t, err := transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusShipped {
			return domain.ErrConflict
		}
		// Las líneas deben cubrir exactamente los insumos despachados.
		if !coversExactly(byIngredient, t.Items) {
			return domain.ErrInvalidInput
		}

		// Mismo orden estable de bloqueo que el despacho.
		ingredientIDs := make([]string, 0, len(t.Items))
		for _, item := range t.Items {
			ingredientIDs = append(ingredientIDs, item.IngredientID)
		}
		sort.Strings(ingredientIDs)

		for _, ingredientID := range ingredientIDs {
			stock, err := stockRepo.GetForUpdate(t.TargetOutletID, ingredientID)
			if err != nil {
				return err
			}
			stock.Quantity = stock.Quantity.Add(byIngredient[ingredientID])
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		for i := range t.Items {
			qty := byIngredient[t.Items[i].IngredientID]
			t.Items[i].QuantityReceived = &qty
		}
		t.Status = entity.TransferStatusReceived
		t.ReceiveDate = &now
		t.ReceivedBy = actorID

		if err := transferRepo.MarkReceived(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, uc.audit, uc.log, AuditEvent{
		TransferID:     result.ID,
		Type:           EventTransferReceived,
		SourceOutletID: result.SourceOutletID,
		TargetOutletID: result.TargetOutletID,
		Actor:          actorID,
		OccurredAt:     now,
		Discrepancies:  transfer.Discrepancies(result),
	})
	return toTransferResponse(result), nil
}
