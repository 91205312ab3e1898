package usecase

import (
	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// StockUseCase lectura del libro de existencias para tableros y pantallas de
// consulta. Toda mutación pasa por el flujo de traslados, nunca por aquí.
type StockUseCase struct {
	stockRepo  repository.StockRepository
	outletRepo repository.OutletRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository, outletRepo repository.OutletRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, outletRepo: outletRepo}
}

// GetStock obtiene la existencia de un insumo en un outlet (cero si no hay fila).
func (uc *StockUseCase) GetStock(outletID, ingredientID string) (*dto.StockResponse, error) {
	if outletID == "" || ingredientID == "" {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(outletID, ingredientID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		OutletID:     stock.OutletID,
		IngredientID: stock.IngredientID,
		Quantity:     stock.Quantity,
		UpdatedAt:    stock.UpdatedAt,
	}, nil
}

// ListByOutlet lista las existencias de un outlet con paginación.
func (uc *StockUseCase) ListByOutlet(outletID string, page dto.PageRequest) (*dto.StockListResponse, error) {
	outlet, err := uc.outletRepo.GetByID(outletID)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.stockRepo.ListByOutlet(outletID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			OutletID:     s.OutletID,
			IngredientID: s.IngredientID,
			Quantity:     s.Quantity,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
