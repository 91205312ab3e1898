package transfer

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// FulfillmentUseCase es el lado central del flujo: revisa solicitudes
// pendientes y confirma despachos de forma transaccional, debitando el libro
// de existencias de la central junto con la transición PENDING → SHIPPED.
type FulfillmentUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	outletRepo   repository.OutletRepository
	audit        AuditPublisher
	log          *logger.Logger
}

// NewFulfillmentUseCase construye el caso de uso.
func NewFulfillmentUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	outletRepo repository.OutletRepository,
	audit AuditPublisher,
	log *logger.Logger,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		outletRepo:   outletRepo,
		audit:        audit,
		log:          log,
	}
}

// ListPending lista las solicitudes PENDING dirigidas a una central, por fecha
// de solicitud ascendente (orden de atención), con paginación reiniciable.
func (uc *FulfillmentUseCase) ListPending(ctx context.Context, centralOutletID string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	outlet, err := uc.outletRepo.GetByID(centralOutletID)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.transferRepo.ListPending(centralOutletID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ProcessShipment confirma el despacho de un traslado pendiente. Todo ocurre
// en una sola transacción contra el estado persistido actual: verificación de
// estado, chequeo de existencias, débito del stock central, escritura de
// cantidades despachadas y transición a SHIPPED. La política es todo-o-nada:
// si una sola línea excede la existencia disponible, el despacho completo se
// rechaza con ErrInsufficientStock y el traslado sigue PENDING. Despachar
// menos de lo pedido es un despacho parcial legítimo, decidido por el actor.
//
// Ante dos despachos concurrentes del mismo traslado solo uno confirma; el
// perdedor recibe ErrConflict y su débito se revierte con la transacción.
func (uc *FulfillmentUseCase) ProcessShipment(ctx context.Context, transferID, actorID string, in dto.ShipTransferRequest) (*dto.TransferResponse, error) {
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
		if t.Status != entity.TransferStatusPending {
			return domain.ErrConflict
		}
		// Las líneas deben cubrir exactamente los insumos solicitados.
		if !coversExactly(byIngredient, t.Items) {
			return domain.ErrInvalidInput
		}

		// Orden estable de bloqueo de filas para evitar deadlocks entre
		// despachos concurrentes que comparten insumos.
		ingredientIDs := make([]string, 0, len(t.Items))
		for _, item := range t.Items {
			ingredientIDs = append(ingredientIDs, item.IngredientID)
		}
		sort.Strings(ingredientIDs)

		stocks := make(map[string]*entity.Stock, len(ingredientIDs))
		for _, ingredientID := range ingredientIDs {
			stock, err := stockRepo.GetForUpdate(t.SourceOutletID, ingredientID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(byIngredient[ingredientID]) {
				return domain.ErrInsufficientStock
			}
			stocks[ingredientID] = stock
		}

		// Todas las líneas alcanzan: debitar la central y fijar cantidades.
		for _, ingredientID := range ingredientIDs {
			stock := stocks[ingredientID]
			stock.Quantity = stock.Quantity.Sub(byIngredient[ingredientID])
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		for i := range t.Items {
			qty := byIngredient[t.Items[i].IngredientID]
			t.Items[i].QuantityShipped = &qty
		}
		t.Status = entity.TransferStatusShipped
		t.ShipDate = &now
		t.ShippedBy = actorID
		t.Carrier = in.Carrier
		t.TrackingRef = in.TrackingRef

		// Precondición optimista sobre estado y versión: el perdedor de una
		// carrera recibe ErrConflict y el rollback deshace su débito.
		if err := transferRepo.MarkShipped(t); err != nil {
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
		Type:           EventTransferShipped,
		SourceOutletID: result.SourceOutletID,
		TargetOutletID: result.TargetOutletID,
		Actor:          actorID,
		OccurredAt:     now,
	})
	return toTransferResponse(result), nil
}
