//go:build pg

package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/infrastructure/postgres"
)

// Tests contra PostgreSQL real (go test -tags pg). Requieren DATABASE_URL.

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS stock (
			outlet_id     TEXT        NOT NULL,
			ingredient_id TEXT        NOT NULL,
			quantity      NUMERIC     NOT NULL DEFAULT 0,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (outlet_id, ingredient_id)
		)`)
	require.NoError(t, err)
	return pool
}

// Dos transacciones acreditan el mismo insumo en un outlet que todavía no
// tiene fila en el libro. Un FOR UPDATE sin filas no bloquea nada, así que
// sin la siembra previa ambas leerían cero y la segunda pisaría el crédito
// de la primera. El resultado final debe ser la suma de ambos créditos.
func TestStockRepo_CreditosConcurrentesSobreFilaNueva(t *testing.T) {
	pool := newTestPool(t)
	runner := postgres.NewTxRunner(pool)

	outletID := "outlet-" + uuid.NewString()
	ingredientID := "ing-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM stock WHERE outlet_id = $1`, outletID)
	})

	credit := func(amount string) error {
		return runner.Run(context.Background(), func(
			_ repository.TransferRepository,
			stockRepo repository.StockRepository,
		) error {
			stock, err := stockRepo.GetForUpdate(outletID, ingredientID)
			if err != nil {
				return err
			}
			// Mantener la tx abierta para que ambas coincidan dentro de la
			// sección crítica.
			time.Sleep(150 * time.Millisecond)
			stock.Quantity = stock.Quantity.Add(decimal.RequireFromString(amount))
			return stockRepo.Upsert(stock)
		})
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, amount := range []string{"40", "10"} {
		wg.Add(1)
		go func(i int, amount string) {
			defer wg.Done()
			errs[i] = credit(amount)
		}(i, amount)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stockRepo := postgres.NewStockRepository(pool)
	got, err := stockRepo.Get(outletID, ingredientID)
	require.NoError(t, err)
	require.True(t, got.Quantity.Equal(decimal.RequireFromString("50")),
		"ambos créditos deben sumarse, got=%s", got.Quantity)
}
