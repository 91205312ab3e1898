package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLineRequest línea de entrada para solicitar, despachar o recibir.
// En la solicitud Quantity es lo pedido; en el despacho lo enviado; en la
// recepción lo físicamente recibido.
type TransferLineRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SubmitTransferRequest cuerpo para crear una solicitud de traslado.
// El outlet solicitante sale del token del actor.
type SubmitTransferRequest struct {
	FulfillerOutletID string                `json:"fulfiller_outlet_id"`
	Lines             []TransferLineRequest `json:"lines"`
}

// ShipTransferRequest cuerpo para despachar un traslado pendiente.
// Las líneas deben cubrir exactamente los insumos de la solicitud; despachar
// menos de lo pedido es un despacho parcial legítimo.
type ShipTransferRequest struct {
	Lines       []TransferLineRequest `json:"lines"`
	Carrier     string                `json:"carrier"`
	TrackingRef string                `json:"tracking_ref"`
}

// ReceiveTransferRequest cuerpo para registrar la recepción en la sucursal.
type ReceiveTransferRequest struct {
	Lines []TransferLineRequest `json:"lines"`
}

// CancelTransferRequest cuerpo para anular una solicitud pendiente.
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferItemResponse línea de traslado en respuestas.
type TransferItemResponse struct {
	IngredientID      string           `json:"ingredient_id"`
	IngredientName    string           `json:"ingredient_name"`
	Unit              string           `json:"unit"`
	QuantityRequested decimal.Decimal  `json:"quantity_requested"`
	QuantityShipped   *decimal.Decimal `json:"quantity_shipped,omitempty"`
	QuantityReceived  *decimal.Decimal `json:"quantity_received,omitempty"`
}

// DiscrepancyResponse diferencia despachado − recibido por línea.
type DiscrepancyResponse struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	Unit             string          `json:"unit"`
	QuantityShipped  decimal.Decimal `json:"quantity_shipped"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	Difference       decimal.Decimal `json:"difference"`
}

// TransferResponse representación completa del agregado en respuestas.
type TransferResponse struct {
	ID             string     `json:"id"`
	SourceOutletID string     `json:"source_outlet_id"`
	TargetOutletID string     `json:"target_outlet_id"`
	Status         string     `json:"status"`
	RequestDate    time.Time  `json:"request_date"`
	ShipDate       *time.Time `json:"ship_date,omitempty"`
	ReceiveDate    *time.Time `json:"receive_date,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`

	RequestedBy string `json:"requested_by"`
	ShippedBy   string `json:"shipped_by,omitempty"`
	ReceivedBy  string `json:"received_by,omitempty"`
	CancelledBy string `json:"cancelled_by,omitempty"`

	Carrier      string `json:"carrier,omitempty"`
	TrackingRef  string `json:"tracking_ref,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`

	Items []TransferItemResponse `json:"items"`

	// Discrepancies solo se incluye en la respuesta de recepción y en
	// consultas de traslados ya recibidos.
	Discrepancies []DiscrepancyResponse `json:"discrepancies,omitempty"`
}

// TransferListResponse página de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
