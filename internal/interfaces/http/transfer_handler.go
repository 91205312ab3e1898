package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	apptransfer "github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP del flujo de traslados (protegido).
type TransferHandler struct {
	request     *apptransfer.RequestUseCase
	fulfillment *apptransfer.FulfillmentUseCase
	receiving   *apptransfer.ReceivingUseCase
	listing     *apptransfer.ListingUseCase
	despatch    *apptransfer.DespatchNoteUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(
	request *apptransfer.RequestUseCase,
	fulfillment *apptransfer.FulfillmentUseCase,
	receiving *apptransfer.ReceivingUseCase,
	listing *apptransfer.ListingUseCase,
	despatch *apptransfer.DespatchNoteUseCase,
) *TransferHandler {
	return &TransferHandler{
		request:     request,
		fulfillment: fulfillment,
		receiving:   receiving,
		listing:     listing,
		despatch:    despatch,
	}
}

// Submit godoc
// @Summary      Crear solicitud de traslado
// @Description  Una sucursal solicita insumos a la central. La solicitud queda PENDING
//
//	hasta que la central la despache o alguna de las partes la anule.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitTransferRequest  true  "fulfiller_outlet_id y líneas (ingredient_id, quantity > 0)"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	userID := GetUserID(c)
	if outletID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.request.SubmitRequest(c.Context(), outletID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar traslados de un punto de venta
// @Description  Devuelve los traslados donde el punto de venta autenticado participa
//
//	según su rol: como solicitante (branch) o como despachador (central).
//
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (PENDING, SHIPPED, RECEIVED, CANCELLED)"
// @Param        search  query  string  false  "Buscar por id o nombre de insumo"
// @Param        limit   query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	role := GetRole(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter := repository.TransferFilter{
		OutletID:   outletID,
		Role:       role,
		Status:     c.Query("status"),
		SearchTerm: c.Query("search"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.listing.ListTransfers(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Cola de solicitudes pendientes de la central
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20, max 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/transfers/pending [get]
func (h *TransferHandler) ListPending(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.fulfillment.ListPending(c.Context(), outletID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	out, err := h.listing.GetTransfer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Despachar una solicitud
// @Description  La central confirma el despacho indicando la cantidad enviada por línea.
//
//	Puede despachar menos de lo solicitado (incluso cero en alguna línea),
//	pero debe cubrir exactamente las líneas de la solicitud. El stock de la
//	central se descuenta en la misma transacción; si alguna línea no alcanza,
//	no se descuenta nada.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del traslado"
// @Param        body  body  dto.ShipTransferRequest  true  "Cantidades despachadas por línea"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/ship [post]
func (h *TransferHandler) Ship(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ShipTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.fulfillment.ProcessShipment(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Confirmar recepción de un despacho
// @Description  La sucursal registra lo que llegó físicamente. El stock de la sucursal
//
//	se acredita con lo recibido y las diferencias contra lo despachado
//	quedan registradas como discrepancias informativas.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del traslado"
// @Param        body  body  dto.ReceiveTransferRequest  true  "Cantidades recibidas por línea"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.receiving.ReceiveShipment(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular una solicitud pendiente
// @Description  Solo se puede anular mientras la solicitud está PENDING. Un despacho
//
//	en tránsito no se anula: se recibe y se reconcilia.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del traslado"
// @Param        body  body  dto.CancelTransferRequest  false  "Motivo de la anulación"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CancelTransferRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.request.CancelRequest(c.Context(), c.Params("id"), userID, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DespatchNote godoc
// @Summary      Guía de despacho en PDF
// @Description  Genera la guía del traslado una vez despachado. Para traslados ya
//
//	recibidos incluye la sección de discrepancias.
//
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/despatch-note [get]
func (h *TransferHandler) DespatchNote(c *fiber.Ctx) error {
	pdf, err := h.despatch.GenerateDespatchNote(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="guia-despacho-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
