package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// OutletUseCase casos de uso CRUD para outlets (sucursales y central).
type OutletUseCase struct {
	repo repository.OutletRepository
}

// NewOutletUseCase construye el caso de uso.
func NewOutletUseCase(repo repository.OutletRepository) *OutletUseCase {
	return &OutletUseCase{repo: repo}
}

// Create crea un nuevo outlet. El rol se fija al crear y no cambia después.
func (uc *OutletUseCase) Create(in dto.CreateOutletRequest) (*dto.OutletResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.OutletRoleBranch && in.Role != entity.OutletRoleCentral {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	outlet := &entity.Outlet{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Role:      in.Role,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(outlet); err != nil {
		return nil, err
	}
	return toOutletResponse(outlet), nil
}

// GetByID obtiene un outlet por ID.
func (uc *OutletUseCase) GetByID(id string) (*dto.OutletResponse, error) {
	outlet, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	return toOutletResponse(outlet), nil
}

// Update actualiza nombre y dirección de un outlet.
func (uc *OutletUseCase) Update(id string, in dto.UpdateOutletRequest) (*dto.OutletResponse, error) {
	outlet, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		outlet.Name = *in.Name
	}
	if in.Address != nil {
		outlet.Address = *in.Address
	}
	outlet.UpdatedAt = time.Now()
	if err := uc.repo.Update(outlet); err != nil {
		return nil, err
	}
	return toOutletResponse(outlet), nil
}

// List lista outlets con paginación.
func (uc *OutletUseCase) List(page dto.PageRequest) (*dto.OutletListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OutletResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOutletResponse(o))
	}
	return &dto.OutletListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toOutletResponse(o *entity.Outlet) *dto.OutletResponse {
	if o == nil {
		return nil
	}
	return &dto.OutletResponse{
		ID:        o.ID,
		Name:      o.Name,
		Role:      o.Role,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
