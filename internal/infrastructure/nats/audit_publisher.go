// Package nats publica los eventos de transición del flujo de traslados al
// log de actividad que consumen los tableros de reporte.
package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
)

// Ensure AuditPublisher implements transfer.AuditPublisher.
var _ transfer.AuditPublisher = (*AuditPublisher)(nil)

// subjectPrefix raíz de los subjects de eventos de traslado:
// traslados.event.created, traslados.event.shipped, etc.
const subjectPrefix = "traslados.event."

// AuditPublisher publica eventos de traslado a NATS. La publicación es
// fire-and-forget desde la perspectiva del flujo: el caller registra el error
// pero nunca revierte la transacción ya confirmada.
type AuditPublisher struct {
	conn *nats.Conn
}

// NewAuditPublisher construye el publicador sobre una conexión NATS.
func NewAuditPublisher(conn *nats.Conn) *AuditPublisher {
	return &AuditPublisher{conn: conn}
}

// Connect abre la conexión a NATS con reconexión automática.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("conectar NATS: %w", err)
	}
	return conn, nil
}

// PublishTransferEvent serializa y publica el evento en su subject por tipo.
func (p *AuditPublisher) PublishTransferEvent(_ context.Context, event transfer.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := p.conn.Publish(subjectPrefix+event.Type, data); err != nil {
		return fmt.Errorf("publicar evento: %w", err)
	}
	return nil
}
