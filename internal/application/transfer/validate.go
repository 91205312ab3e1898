package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// linesByIngredient indexa líneas de entrada por insumo validando cantidades.
// allowZero permite cantidad cero (despacho/recepción); la solicitud exige > 0.
// Rechaza líneas vacías, insumos repetidos y cantidades negativas.
func linesByIngredient(lines []dto.TransferLineRequest, allowZero bool) (map[string]decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	byIngredient := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		if line.IngredientID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := byIngredient[line.IngredientID]; dup {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if !allowZero && !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		byIngredient[line.IngredientID] = line.Quantity
	}
	return byIngredient, nil
}

// coversExactly verifica que las líneas de entrada cubran exactamente los
// insumos del traslado: ni adiciones ni omisiones.
func coversExactly(byIngredient map[string]decimal.Decimal, items []entity.StockTransferItem) bool {
	if len(byIngredient) != len(items) {
		return false
	}
	for _, item := range items {
		if _, ok := byIngredient[item.IngredientID]; !ok {
			return false
		}
	}
	return true
}
