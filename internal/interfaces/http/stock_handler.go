package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/application/usecase"
)

// StockHandler expone las existencias por outlet (solo lectura: el stock solo
// muta a través del flujo de traslados).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListByOutlet godoc
// @Summary      Existencias de un punto de venta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        outlet_id  path   string  true   "ID del punto de venta"
// @Param        limit      query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outlets/{outlet_id}/stock [get]
func (h *StockHandler) ListByOutlet(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByOutlet(c.Params("outlet_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Existencia de un insumo en un punto de venta
// @Description  Si nunca hubo movimientos para el par (outlet, insumo) devuelve
//
//	cantidad cero, no 404.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        outlet_id      path  string  true  "ID del punto de venta"
// @Param        ingredient_id  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outlets/{outlet_id}/stock/{ingredient_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.Params("outlet_id"), c.Params("ingredient_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
