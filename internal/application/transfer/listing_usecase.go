package transfer

import (
	"context"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// ListingUseCase superficie de consulta para los tableros: lista traslados de
// un outlet (como sucursal o como central) con filtros y búsqueda. Solo lee.
type ListingUseCase struct {
	transferRepo repository.TransferRepository
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(transferRepo repository.TransferRepository) *ListingUseCase {
	return &ListingUseCase{transferRepo: transferRepo}
}

// ListTransfers lista por fecha de solicitud descendente. Role decide el lado:
// branch filtra por outlet destino, central por outlet origen. Status y
// searchTerm son opcionales; searchTerm busca por ID de traslado o nombre de
// insumo en las líneas.
func (uc *ListingUseCase) ListTransfers(ctx context.Context, filter repository.TransferFilter, page dto.PageRequest) (*dto.TransferListResponse, error) {
	if filter.OutletID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.Role != entity.OutletRoleBranch && filter.Role != entity.OutletRoleCentral {
		return nil, domain.ErrInvalidInput
	}
	if filter.Status != "" && !transfer.ValidStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.transferRepo.List(filter, page.Limit, page.Offset)
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

// GetTransfer devuelve un traslado por ID con sus líneas (y discrepancias si
// ya fue recibido).
func (uc *ListingUseCase) GetTransfer(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}
