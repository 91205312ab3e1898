package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la transición del traslado y el
// ajuste del libro de existencias se confirmen como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// Tipos de evento de auditoría del ciclo de vida de traslados.
const (
	EventTransferCreated   = "created"
	EventTransferShipped   = "shipped"
	EventTransferReceived  = "received"
	EventTransferCancelled = "cancelled"
)

// AuditEvent registro de una transición exitosa, para el log de actividad.
type AuditEvent struct {
	TransferID     string                     `json:"transfer_id"`
	Type           string                     `json:"type"`
	SourceOutletID string                     `json:"source_outlet_id"`
	TargetOutletID string                     `json:"target_outlet_id"`
	Actor          string                     `json:"actor"`
	OccurredAt     time.Time                  `json:"occurred_at"`
	Discrepancies  []transfer.LineDiscrepancy `json:"discrepancies,omitempty"`
}

// AuditPublisher publica eventos de transición hacia el log de actividad.
// Es fire-and-forget: un fallo de publicación se registra en el log pero
// nunca revierte la transacción del flujo.
type AuditPublisher interface {
	PublishTransferEvent(ctx context.Context, event AuditEvent) error
}

// publishAudit envía el evento al log de actividad si hay publicador configurado.
func publishAudit(ctx context.Context, audit AuditPublisher, log *logger.Logger, event AuditEvent) {
	if audit == nil {
		return
	}
	if err := audit.PublishTransferEvent(ctx, event); err != nil && log != nil {
		log.Warn().Err(err).
			Str("transfer_id", event.TransferID).
			Str("event", event.Type).
			Msg("no se pudo publicar evento de auditoría")
	}
}

// DespatchNoteGenerator genera la remisión de traslado en PDF.
type DespatchNoteGenerator interface {
	GenerateDespatchNote(
		ctx context.Context,
		t *entity.StockTransfer,
		source, target *entity.Outlet,
		discrepancies []transfer.LineDiscrepancy,
	) ([]byte, error)
}
