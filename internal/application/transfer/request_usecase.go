package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// RequestUseCase crea solicitudes de traslado desde la sucursal y permite
// anularlas mientras siguen pendientes.
type RequestUseCase struct {
	txRunner       TxRunner
	transferRepo   repository.TransferRepository
	outletRepo     repository.OutletRepository
	ingredientRepo repository.IngredientRepository
	audit          AuditPublisher
	log            *logger.Logger
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	outletRepo repository.OutletRepository,
	ingredientRepo repository.IngredientRepository,
	audit AuditPublisher,
	log *logger.Logger,
) *RequestUseCase {
	return &RequestUseCase{
		txRunner:       txRunner,
		transferRepo:   transferRepo,
		outletRepo:     outletRepo,
		ingredientRepo: ingredientRepo,
		audit:          audit,
		log:            log,
	}
}

// SubmitRequest valida y persiste una nueva solicitud en PENDING. El outlet
// solicitante viene del token del actor; el nombre y la unidad de cada insumo
// se denormalizan del catálogo al momento de crear. Ante cualquier
// precondición violada no se persiste nada.
func (uc *RequestUseCase) SubmitRequest(ctx context.Context, requesterOutletID, actorID string, in dto.SubmitTransferRequest) (*dto.TransferResponse, error) {
	if requesterOutletID == "" || in.FulfillerOutletID == "" {
		return nil, domain.ErrInvalidInput
	}
	if requesterOutletID == in.FulfillerOutletID {
		return nil, domain.ErrInvalidInput
	}
	byIngredient, err := linesByIngredient(in.Lines, false)
	if err != nil {
		return nil, err
	}

	requester, err := uc.outletRepo.GetByID(requesterOutletID)
	if err != nil {
		return nil, err
	}
	fulfiller, err := uc.outletRepo.GetByID(in.FulfillerOutletID)
	if err != nil {
		return nil, err
	}
	if requester == nil || fulfiller == nil {
		return nil, domain.ErrNotFound
	}
	// Solo la bodega central despacha traslados.
	if !fulfiller.IsCentral() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	t := &entity.StockTransfer{
		ID:             uuid.New().String(),
		SourceOutletID: fulfiller.ID,
		TargetOutletID: requester.ID,
		Status:         entity.TransferStatusPending,
		RequestDate:    now,
		RequestedBy:    actorID,
	}
	// Respetar el orden de las líneas tal como llegó la solicitud.
	for i, line := range in.Lines {
		ingredient, err := uc.ingredientRepo.GetByID(line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, domain.ErrNotFound
		}
		if !ingredient.Active {
			return nil, domain.ErrInvalidInput
		}
		t.Items = append(t.Items, entity.StockTransferItem{
			ID:                uuid.New().String(),
			TransferID:        t.ID,
			IngredientID:      ingredient.ID,
			IngredientName:    ingredient.Name,
			Unit:              ingredient.Unit,
			QuantityRequested: byIngredient[line.IngredientID],
			Position:          i,
		})
	}

	// Cabecera y líneas se insertan en una sola transacción: nunca queda un
	// agregado parcial.
	err = uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
	) error {
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, uc.audit, uc.log, AuditEvent{
		TransferID:     t.ID,
		Type:           EventTransferCreated,
		SourceOutletID: t.SourceOutletID,
		TargetOutletID: t.TargetOutletID,
		Actor:          actorID,
		OccurredAt:     now,
	})
	return toTransferResponse(t), nil
}

// CancelRequest anula una solicitud que sigue en PENDING. Nunca toca el libro
// de existencias: nada fue debitado aún. Si el traslado ya avanzó de estado,
// devuelve ErrConflict.
func (uc *RequestUseCase) CancelRequest(ctx context.Context, transferID, actorID, reason string) (*dto.TransferResponse, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !transfer.CanTransition(t.Status, entity.TransferStatusCancelled) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	t.Status = entity.TransferStatusCancelled
	t.CancelledAt = &now
	t.CancelledBy = actorID
	t.CancelReason = reason
	// Precondición optimista: si otro actor ganó la carrera (despacho o
	// anulación concurrente) MarkCancelled devuelve ErrConflict.
	if err := uc.transferRepo.MarkCancelled(t); err != nil {
		return nil, err
	}

	publishAudit(ctx, uc.audit, uc.log, AuditEvent{
		TransferID:     t.ID,
		Type:           EventTransferCancelled,
		SourceOutletID: t.SourceOutletID,
		TargetOutletID: t.TargetOutletID,
		Actor:          actorID,
		OccurredAt:     now,
	})
	return toTransferResponse(t), nil
}
