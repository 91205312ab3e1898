package transfer

import (
	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// toTransferResponse mapea el agregado a su representación de salida.
// Para traslados ya recibidos incluye las discrepancias calculadas.
func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransferItemResponse{
			IngredientID:      item.IngredientID,
			IngredientName:    item.IngredientName,
			Unit:              item.Unit,
			QuantityRequested: item.QuantityRequested,
			QuantityShipped:   item.QuantityShipped,
			QuantityReceived:  item.QuantityReceived,
		})
	}
	resp := &dto.TransferResponse{
		ID:             t.ID,
		SourceOutletID: t.SourceOutletID,
		TargetOutletID: t.TargetOutletID,
		Status:         t.Status,
		RequestDate:    t.RequestDate,
		ShipDate:       t.ShipDate,
		ReceiveDate:    t.ReceiveDate,
		CancelledAt:    t.CancelledAt,
		RequestedBy:    t.RequestedBy,
		ShippedBy:      t.ShippedBy,
		ReceivedBy:     t.ReceivedBy,
		CancelledBy:    t.CancelledBy,
		Carrier:        t.Carrier,
		TrackingRef:    t.TrackingRef,
		CancelReason:   t.CancelReason,
		Items:          items,
	}
	if t.Status == entity.TransferStatusReceived {
		resp.Discrepancies = toDiscrepancyResponses(transfer.Discrepancies(t))
	}
	return resp
}

func toDiscrepancyResponses(list []transfer.LineDiscrepancy) []dto.DiscrepancyResponse {
	out := make([]dto.DiscrepancyResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DiscrepancyResponse{
			IngredientID:     d.IngredientID,
			IngredientName:   d.IngredientName,
			Unit:             d.Unit,
			QuantityShipped:  d.QuantityShipped,
			QuantityReceived: d.QuantityReceived,
			Difference:       d.Difference,
		})
	}
	return out
}
