package transfer

import (
	"context"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// DespatchNoteUseCase genera la remisión de traslado en PDF: el documento que
// viaja con la mercancía y respalda la conciliación en la sucursal.
type DespatchNoteUseCase struct {
	transferRepo repository.TransferRepository
	outletRepo   repository.OutletRepository
	generator    DespatchNoteGenerator
}

// NewDespatchNoteUseCase construye el caso de uso.
func NewDespatchNoteUseCase(
	transferRepo repository.TransferRepository,
	outletRepo repository.OutletRepository,
	generator DespatchNoteGenerator,
) *DespatchNoteUseCase {
	return &DespatchNoteUseCase{
		transferRepo: transferRepo,
		outletRepo:   outletRepo,
		generator:    generator,
	}
}

// GenerateDespatchNote genera el PDF de un traslado despachado o recibido.
// Un traslado pendiente o anulado no tiene remisión: ErrConflict.
func (uc *DespatchNoteUseCase) GenerateDespatchNote(ctx context.Context, transferID string) ([]byte, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status != entity.TransferStatusShipped && t.Status != entity.TransferStatusReceived {
		return nil, domain.ErrConflict
	}

	source, err := uc.outletRepo.GetByID(t.SourceOutletID)
	if err != nil {
		return nil, err
	}
	target, err := uc.outletRepo.GetByID(t.TargetOutletID)
	if err != nil {
		return nil, err
	}
	if source == nil || target == nil {
		return nil, domain.ErrNotFound
	}

	return uc.generator.GenerateDespatchNote(ctx, t, source, target, transfer.Discrepancies(t))
}
