package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

func branchFilter() repository.TransferFilter {
	return repository.TransferFilter{OutletID: branchID, Role: entity.OutletRoleBranch}
}

// ──────────────────────────────────────────────────────────────────────────────
// ListTransfers
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransfers_ValidaFiltro(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.listing.ListTransfers(ctx, repository.TransferFilter{Role: entity.OutletRoleBranch}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "outlet requerido")

	_, err = f.listing.ListTransfers(ctx, repository.TransferFilter{OutletID: branchID, Role: "gerente"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")

	filter := branchFilter()
	filter.Status = "IN_TRANSIT"
	_, err = f.listing.ListTransfers(ctx, filter, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")
}

func TestListTransfers_MasRecientePrimero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := createPending(t, f, line("ing-harina", "1"))
	time.Sleep(2 * time.Millisecond)
	second := createPending(t, f, line("ing-aceite", "2"))

	resp, err := f.listing.ListTransfers(ctx, branchFilter(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, second.ID, resp.Items[0].ID, "el tablero muestra lo más reciente primero")
	assert.Equal(t, first.ID, resp.Items[1].ID)
}

func TestListTransfers_FiltraPorLado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	createPending(t, f, line("ing-harina", "1"))

	// Como central (origen) el traslado también aparece.
	resp, err := f.listing.ListTransfers(ctx, repository.TransferFilter{
		OutletID: centralID, Role: entity.OutletRoleCentral,
	}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	// Otra sucursal no ve nada.
	resp, err = f.listing.ListTransfers(ctx, repository.TransferFilter{
		OutletID: "outlet-sucursal-sur", Role: entity.OutletRoleBranch,
	}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestListTransfers_FiltraPorEstadoYBusqueda(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.setStock(centralID, "ing-harina", "100")

	shipped := createPending(t, f, line("ing-harina", "10"))
	_, err := f.fulfillment.ProcessShipment(ctx, shipped.ID, actorID, shipReq(line("ing-harina", "10")))
	require.NoError(t, err)
	createPending(t, f, line("ing-aceite", "5"))

	filter := branchFilter()
	filter.Status = entity.TransferStatusShipped
	resp, err := f.listing.ListTransfers(ctx, filter, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, shipped.ID, resp.Items[0].ID)

	// Búsqueda por nombre de insumo en las líneas.
	filter = branchFilter()
	filter.SearchTerm = "aceite"
	resp, err = f.listing.ListTransfers(ctx, filter, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Aceite", resp.Items[0].Items[0].IngredientName)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransfer_IncluyeDiscrepanciasSoloAlRecibir(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.setStock(centralID, "ing-harina", "100")

	created := createPending(t, f, line("ing-harina", "10"))

	resp, err := f.listing.GetTransfer(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Discrepancies, "sin discrepancias antes de la recepción")

	_, err = f.fulfillment.ProcessShipment(ctx, created.ID, actorID, shipReq(line("ing-harina", "10")))
	require.NoError(t, err)
	_, err = f.receiving.ReceiveShipment(ctx, created.ID, actorID, receiveReq(line("ing-harina", "8")))
	require.NoError(t, err)

	resp, err = f.listing.GetTransfer(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Discrepancies, 1)
	assert.True(t, resp.Discrepancies[0].Difference.Equal(dec("2")))
}

func TestGetTransfer_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.listing.GetTransfer(context.Background(), "transfer-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
