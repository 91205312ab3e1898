package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del libro de existencias sobre PostgreSQL
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de un insumo en un outlet.
// Si no hay fila devuelve cantidad cero, no error.
func (r *StockRepo) Get(outletID, ingredientID string) (*entity.Stock, error) {
	query := `
		SELECT outlet_id, ingredient_id, quantity, updated_at
		FROM stock WHERE outlet_id = $1 AND ingredient_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, outletID, ingredientID).Scan(
		&s.OutletID, &s.IngredientID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{OutletID: outletID, IngredientID: ingredientID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE).
// Dos traslados que ajustan el mismo insumo serializan aquí. Si la fila
// todavía no existe se siembra con cantidad cero antes del SELECT: un
// FOR UPDATE sin filas no bloquea nada y dos transacciones concurrentes
// leerían cero y se pisarían la acreditación entre sí.
func (r *StockRepo) GetForUpdate(outletID, ingredientID string) (*entity.Stock, error) {
	seed := `
		INSERT INTO stock (outlet_id, ingredient_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (outlet_id, ingredient_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, outletID, ingredientID); err != nil {
		return nil, fmt.Errorf("seed stock row: %w", err)
	}
	query := `
		SELECT outlet_id, ingredient_id, quantity, updated_at
		FROM stock WHERE outlet_id = $1 AND ingredient_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, outletID, ingredientID).Scan(
		&s.OutletID, &s.IngredientID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en existencia (por outlet e insumo).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (outlet_id, ingredient_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (outlet_id, ingredient_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.OutletID, stock.IngredientID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByOutlet lista las existencias de un outlet con paginación.
func (r *StockRepo) ListByOutlet(outletID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT outlet_id, ingredient_id, quantity, updated_at
		FROM stock WHERE outlet_id = $1
		ORDER BY ingredient_id ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, outletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.OutletID, &s.IngredientID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
