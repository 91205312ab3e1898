package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL
// (usable con pool o tx). Las transiciones usan precondición optimista sobre
// status y version en el WHERE: cero filas afectadas significa que otra
// llamada ganó la carrera (domain.ErrConflict).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, source_outlet_id, target_outlet_id, status, version,
		request_date, ship_date, receive_date, cancelled_at,
		requested_by, shipped_by, received_by, cancelled_by,
		carrier, tracking_ref, cancel_reason`

// Create persiste el agregado completo: cabecera más líneas. Llamar dentro de
// una tx para que nunca quede un agregado parcial.
func (r *TransferRepo) Create(t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, source_outlet_id, target_outlet_id, status, version,
			request_date, requested_by, carrier, tracking_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.SourceOutletID, t.TargetOutletID, t.Status, t.Version,
		t.RequestDate, t.RequestedBy, t.Carrier, t.TrackingRef,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO stock_transfer_items (id, transfer_id, ingredient_id, ingredient_name,
			unit, quantity_requested, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range t.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, t.ID, item.IngredientID, item.IngredientName,
			item.Unit, item.QuantityRequested, item.Position,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el agregado con sus líneas; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	t, err := r.scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadItems(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListPending lista traslados PENDING de una central por fecha de solicitud
// ascendente (orden de atención).
func (r *TransferRepo) ListPending(fulfillerOutletID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + `
		FROM stock_transfers
		WHERE source_outlet_id = $1 AND status = $2
		ORDER BY request_date ASC LIMIT $3 OFFSET $4`
	return r.queryTransfers(query, fulfillerOutletID, entity.TransferStatusPending, limit, offset)
}

// List lista traslados según filtro, por fecha de solicitud descendente.
// searchTerm busca por ID del traslado o nombre de insumo en las líneas.
func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.StockTransfer, error) {
	side := "target_outlet_id"
	if filter.Role == entity.OutletRoleCentral {
		side = "source_outlet_id"
	}
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE ` + side + ` = $1`
	args := []any{filter.OutletID}
	pos := 2
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.SearchTerm != "" {
		query += fmt.Sprintf(` AND (id::text ILIKE '%%' || $%d || '%%' OR EXISTS (
			SELECT 1 FROM stock_transfer_items i
			WHERE i.transfer_id = stock_transfers.id
			  AND i.ingredient_name ILIKE '%%' || $%d || '%%'))`, pos, pos)
		args = append(args, filter.SearchTerm)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY request_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryTransfers(query, args...)
}

// MarkShipped aplica PENDING → SHIPPED con precondición optimista. Las
// cantidades despachadas solo se escriben sobre líneas aún sin despachar
// (quantity_shipped IS NULL): una vez fijadas son inmutables.
func (r *TransferRepo) MarkShipped(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, version = version + 1,
			ship_date = $3, shipped_by = $4, carrier = $5, tracking_ref = $6
		WHERE id = $1 AND status = $7 AND version = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, entity.TransferStatusShipped,
		t.ShipDate, t.ShippedBy, t.Carrier, t.TrackingRef,
		entity.TransferStatusPending, t.Version,
	)
	if err != nil {
		return fmt.Errorf("mark shipped: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	itemQuery := `
		UPDATE stock_transfer_items SET quantity_shipped = $3
		WHERE transfer_id = $1 AND ingredient_id = $2 AND quantity_shipped IS NULL`
	for _, item := range t.Items {
		if _, err := r.q.Exec(context.Background(), itemQuery, t.ID, item.IngredientID, item.QuantityShipped); err != nil {
			return fmt.Errorf("mark item shipped: %w", err)
		}
	}
	t.Version++
	return nil
}

// MarkReceived aplica SHIPPED → RECEIVED con precondición optimista.
func (r *TransferRepo) MarkReceived(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, version = version + 1, receive_date = $3, received_by = $4
		WHERE id = $1 AND status = $5 AND version = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, entity.TransferStatusReceived,
		t.ReceiveDate, t.ReceivedBy,
		entity.TransferStatusShipped, t.Version,
	)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	itemQuery := `
		UPDATE stock_transfer_items SET quantity_received = $3
		WHERE transfer_id = $1 AND ingredient_id = $2 AND quantity_received IS NULL`
	for _, item := range t.Items {
		if _, err := r.q.Exec(context.Background(), itemQuery, t.ID, item.IngredientID, item.QuantityReceived); err != nil {
			return fmt.Errorf("mark item received: %w", err)
		}
	}
	t.Version++
	return nil
}

// MarkCancelled aplica PENDING → CANCELLED con precondición optimista. No
// toca líneas ni existencias.
func (r *TransferRepo) MarkCancelled(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, version = version + 1,
			cancelled_at = $3, cancelled_by = $4, cancel_reason = $5
		WHERE id = $1 AND status = $6 AND version = $7`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, entity.TransferStatusCancelled,
		t.CancelledAt, t.CancelledBy, t.CancelReason,
		entity.TransferStatusPending, t.Version,
	)
	if err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	t.Version++
	return nil
}

// queryTransfers ejecuta una consulta de cabeceras y carga las líneas de cada una.
func (r *TransferRepo) queryTransfers(query string, args ...any) ([]*entity.StockTransfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadItems(t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// scanTransfer lee una cabecera desde una fila (campos de actor nullables).
func (r *TransferRepo) scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	var shippedBy, receivedBy, cancelledBy, carrier, trackingRef, cancelReason *string
	err := row.Scan(
		&t.ID, &t.SourceOutletID, &t.TargetOutletID, &t.Status, &t.Version,
		&t.RequestDate, &t.ShipDate, &t.ReceiveDate, &t.CancelledAt,
		&t.RequestedBy, &shippedBy, &receivedBy, &cancelledBy,
		&carrier, &trackingRef, &cancelReason,
	)
	if err != nil {
		return nil, err
	}
	if shippedBy != nil {
		t.ShippedBy = *shippedBy
	}
	if receivedBy != nil {
		t.ReceivedBy = *receivedBy
	}
	if cancelledBy != nil {
		t.CancelledBy = *cancelledBy
	}
	if carrier != nil {
		t.Carrier = *carrier
	}
	if trackingRef != nil {
		t.TrackingRef = *trackingRef
	}
	if cancelReason != nil {
		t.CancelReason = *cancelReason
	}
	return &t, nil
}

// loadItems carga las líneas del traslado en su orden original.
func (r *TransferRepo) loadItems(t *entity.StockTransfer) error {
	query := `
		SELECT id, transfer_id, ingredient_id, ingredient_name, unit,
			quantity_requested, quantity_shipped, quantity_received, position
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY position ASC`
	rows, err := r.q.Query(context.Background(), query, t.ID)
	if err != nil {
		return fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.StockTransferItem
		if err := rows.Scan(
			&item.ID, &item.TransferID, &item.IngredientID, &item.IngredientName, &item.Unit,
			&item.QuantityRequested, &item.QuantityShipped, &item.QuantityReceived, &item.Position,
		); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, item)
	}
	return rows.Err()
}
