package transfer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_SoloTransicionesLegales(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.TransferStatusPending, entity.TransferStatusShipped, true},
		{entity.TransferStatusPending, entity.TransferStatusCancelled, true},
		{entity.TransferStatusShipped, entity.TransferStatusReceived, true},

		// Un despacho en tránsito no se anula: se recibe y se concilia.
		{entity.TransferStatusShipped, entity.TransferStatusCancelled, false},
		// No hay saltos ni retrocesos.
		{entity.TransferStatusPending, entity.TransferStatusReceived, false},
		{entity.TransferStatusShipped, entity.TransferStatusPending, false},
		{entity.TransferStatusReceived, entity.TransferStatusPending, false},
		{entity.TransferStatusReceived, entity.TransferStatusShipped, false},
		{entity.TransferStatusReceived, entity.TransferStatusCancelled, false},
		{entity.TransferStatusCancelled, entity.TransferStatusPending, false},
		{entity.TransferStatusCancelled, entity.TransferStatusShipped, false},
		// Estados desconocidos no transicionan a nada.
		{"UNKNOWN", entity.TransferStatusShipped, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, transfer.CanTransition(c.from, c.to),
			"transición %s → %s", c.from, c.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, transfer.IsTerminal(entity.TransferStatusPending))
	assert.False(t, transfer.IsTerminal(entity.TransferStatusShipped))
	assert.True(t, transfer.IsTerminal(entity.TransferStatusReceived))
	assert.True(t, transfer.IsTerminal(entity.TransferStatusCancelled))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		entity.TransferStatusPending,
		entity.TransferStatusShipped,
		entity.TransferStatusReceived,
		entity.TransferStatusCancelled,
	} {
		assert.True(t, transfer.ValidStatus(s), s)
	}
	assert.False(t, transfer.ValidStatus("pending"), "los estados son case-sensitive")
	assert.False(t, transfer.ValidStatus(""))
	assert.False(t, transfer.ValidStatus("IN_TRANSIT"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Discrepancias
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestDiscrepancies_FaltanteSobranteYExacto(t *testing.T) {
	tr := &entity.StockTransfer{
		Status: entity.TransferStatusReceived,
		Items: []entity.StockTransferItem{
			{
				IngredientID:      "ing-harina",
				IngredientName:    "Harina de trigo",
				Unit:              "kg",
				QuantityRequested: dec("50"),
				QuantityShipped:   decPtr("40"),
				QuantityReceived:  decPtr("38.5"),
			},
			{
				IngredientID:      "ing-aceite",
				IngredientName:    "Aceite",
				Unit:              "l",
				QuantityRequested: dec("10"),
				QuantityShipped:   decPtr("10"),
				QuantityReceived:  decPtr("12"),
			},
			{
				IngredientID:      "ing-sal",
				IngredientName:    "Sal",
				Unit:              "kg",
				QuantityRequested: dec("5"),
				QuantityShipped:   decPtr("5"),
				QuantityReceived:  decPtr("5"),
			},
		},
	}

	discs := transfer.Discrepancies(tr)
	require.Len(t, discs, 3)

	// Faltante: despachado 40, recibido 38.5 → diferencia +1.5
	assert.Equal(t, "ing-harina", discs[0].IngredientID)
	assert.True(t, discs[0].Difference.Equal(dec("1.5")),
		"faltante debe ser positivo, got %s", discs[0].Difference)

	// Sobrante: despachado 10, recibido 12 → diferencia -2
	assert.True(t, discs[1].Difference.Equal(dec("-2")),
		"sobrante debe ser negativo, got %s", discs[1].Difference)

	// Exacto: diferencia cero
	assert.True(t, discs[2].Difference.IsZero())
}

func TestDiscrepancies_OmiteLineasSinCantidades(t *testing.T) {
	// Traslado aún en curso: sin cantidades de despacho ni recepción.
	tr := &entity.StockTransfer{
		Status: entity.TransferStatusPending,
		Items: []entity.StockTransferItem{
			{IngredientID: "ing-1", QuantityRequested: dec("3")},
			{IngredientID: "ing-2", QuantityRequested: dec("7"), QuantityShipped: decPtr("7")},
		},
	}
	assert.Empty(t, transfer.Discrepancies(tr),
		"líneas sin despacho o sin recepción no generan discrepancia")
}

func TestItemByIngredient(t *testing.T) {
	tr := &entity.StockTransfer{
		Items: []entity.StockTransferItem{
			{IngredientID: "ing-1", QuantityRequested: dec("3")},
			{IngredientID: "ing-2", QuantityRequested: dec("7")},
		},
	}
	item := tr.ItemByIngredient("ing-2")
	require.NotNil(t, item)
	assert.True(t, item.QuantityRequested.Equal(dec("7")))

	assert.Nil(t, tr.ItemByIngredient("ing-nope"))
}
