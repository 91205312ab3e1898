package transfer_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apptransfer "github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Reproducen el contrato de los repositorios reales, incluida la precondición
// optimista de los Mark* (estado + versión) y el rollback transaccional del
// TxRunner. Así los tests de concurrencia ejercitan las mismas garantías que
// la implementación PostgreSQL sin necesidad de una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	transfers map[string]*entity.StockTransfer
	stocks    map[string]decimal.Decimal // clave: outletID + "|" + ingredientID
	outlets   map[string]*entity.Outlet
	catalog   map[string]*entity.Ingredient
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transfers: make(map[string]*entity.StockTransfer),
		stocks:    make(map[string]decimal.Decimal),
		outlets:   make(map[string]*entity.Outlet),
		catalog:   make(map[string]*entity.Ingredient),
	}
}

func stockKey(outletID, ingredientID string) string {
	return outletID + "|" + ingredientID
}

func cloneTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	if t == nil {
		return nil
	}
	c := *t
	c.Items = make([]entity.StockTransferItem, len(t.Items))
	for i, item := range t.Items {
		ci := item
		if item.QuantityShipped != nil {
			v := *item.QuantityShipped
			ci.QuantityShipped = &v
		}
		if item.QuantityReceived != nil {
			v := *item.QuantityReceived
			ci.QuantityReceived = &v
		}
		c.Items[i] = ci
	}
	return &c
}

func (s *fakeStore) snapshotLocked() (map[string]*entity.StockTransfer, map[string]decimal.Decimal) {
	transfers := make(map[string]*entity.StockTransfer, len(s.transfers))
	for id, t := range s.transfers {
		transfers[id] = cloneTransfer(t)
	}
	stocks := make(map[string]decimal.Decimal, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	return transfers, stocks
}

// fakeTxRunner serializa las transacciones con el mutex del store y restaura
// un snapshot si fn devuelve error, igual que el rollback real.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snapTransfers, snapStocks := r.store.snapshotLocked()
	err := fn(
		&fakeTransferRepo{store: r.store, inTx: true},
		&fakeStockRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.transfers = snapTransfers
		r.store.stocks = snapStocks
	}
	return err
}

// fakeTransferRepo implementa repository.TransferRepository. Con inTx=true
// asume que el TxRunner ya tiene el mutex tomado.
type fakeTransferRepo struct {
	store *fakeStore
	inTx  bool
}

func (r *fakeTransferRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *fakeTransferRepo) Create(t *entity.StockTransfer) error {
	defer r.lock()()
	if _, exists := r.store.transfers[t.ID]; exists {
		return domain.ErrDuplicate
	}
	r.store.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	defer r.lock()()
	return cloneTransfer(r.store.transfers[id]), nil
}

func (r *fakeTransferRepo) ListPending(fulfillerOutletID string, limit, offset int) ([]*entity.StockTransfer, error) {
	defer r.lock()()
	var list []*entity.StockTransfer
	for _, t := range r.store.transfers {
		if t.Status == entity.TransferStatusPending && t.SourceOutletID == fulfillerOutletID {
			list = append(list, cloneTransfer(t))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].RequestDate.Before(list[j].RequestDate) })
	return pageTransfers(list, limit, offset), nil
}

func (r *fakeTransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.StockTransfer, error) {
	defer r.lock()()
	var list []*entity.StockTransfer
	for _, t := range r.store.transfers {
		sideID := t.TargetOutletID
		if filter.Role == entity.OutletRoleCentral {
			sideID = t.SourceOutletID
		}
		if sideID != filter.OutletID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.SearchTerm != "" && !matchesSearch(t, filter.SearchTerm) {
			continue
		}
		list = append(list, cloneTransfer(t))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].RequestDate.After(list[j].RequestDate) })
	return pageTransfers(list, limit, offset), nil
}

func matchesSearch(t *entity.StockTransfer, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(t.ID), term) {
		return true
	}
	for _, item := range t.Items {
		if strings.Contains(strings.ToLower(item.IngredientName), term) {
			return true
		}
	}
	return false
}

func pageTransfers(list []*entity.StockTransfer, limit, offset int) []*entity.StockTransfer {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// markTransition aplica la precondición optimista de los Mark* reales:
// el registro debe seguir en el estado de origen con la versión leída.
func (r *fakeTransferRepo) markTransition(t *entity.StockTransfer, from string) error {
	defer r.lock()()
	cur, ok := r.store.transfers[t.ID]
	if !ok {
		return domain.ErrConflict
	}
	if cur.Status != from || cur.Version != t.Version {
		return domain.ErrConflict
	}
	t.Version++
	r.store.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *fakeTransferRepo) MarkShipped(t *entity.StockTransfer) error {
	return r.markTransition(t, entity.TransferStatusPending)
}

func (r *fakeTransferRepo) MarkReceived(t *entity.StockTransfer) error {
	return r.markTransition(t, entity.TransferStatusShipped)
}

func (r *fakeTransferRepo) MarkCancelled(t *entity.StockTransfer) error {
	return r.markTransition(t, entity.TransferStatusPending)
}

// fakeStockRepo implementa repository.StockRepository sobre el mismo store.
type fakeStockRepo struct {
	store *fakeStore
	inTx  bool
}

func (r *fakeStockRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *fakeStockRepo) Get(outletID, ingredientID string) (*entity.Stock, error) {
	defer r.lock()()
	return &entity.Stock{
		OutletID:     outletID,
		IngredientID: ingredientID,
		Quantity:     r.store.stocks[stockKey(outletID, ingredientID)],
	}, nil
}

// GetForUpdate siembra la fila con cero si no existe, igual que el adaptador
// PostgreSQL (una fila inexistente no se puede bloquear con FOR UPDATE).
func (r *fakeStockRepo) GetForUpdate(outletID, ingredientID string) (*entity.Stock, error) {
	defer r.lock()()
	key := stockKey(outletID, ingredientID)
	if _, ok := r.store.stocks[key]; !ok {
		r.store.stocks[key] = decimal.Zero
	}
	return &entity.Stock{
		OutletID:     outletID,
		IngredientID: ingredientID,
		Quantity:     r.store.stocks[key],
	}, nil
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	defer r.lock()()
	r.store.stocks[stockKey(stock.OutletID, stock.IngredientID)] = stock.Quantity
	return nil
}

func (r *fakeStockRepo) ListByOutlet(outletID string, limit, offset int) ([]*entity.Stock, error) {
	defer r.lock()()
	var list []*entity.Stock
	for key, qty := range r.store.stocks {
		parts := strings.SplitN(key, "|", 2)
		if parts[0] != outletID {
			continue
		}
		list = append(list, &entity.Stock{OutletID: outletID, IngredientID: parts[1], Quantity: qty})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].IngredientID < list[j].IngredientID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// fakeOutletRepo implementa repository.OutletRepository.
type fakeOutletRepo struct {
	store *fakeStore
}

func (r *fakeOutletRepo) Create(o *entity.Outlet) error {
	r.store.outlets[o.ID] = o
	return nil
}

func (r *fakeOutletRepo) GetByID(id string) (*entity.Outlet, error) {
	return r.store.outlets[id], nil
}

func (r *fakeOutletRepo) Update(o *entity.Outlet) error {
	r.store.outlets[o.ID] = o
	return nil
}

func (r *fakeOutletRepo) List(limit, offset int) ([]*entity.Outlet, error) {
	var list []*entity.Outlet
	for _, o := range r.store.outlets {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// fakeIngredientRepo implementa repository.IngredientRepository.
type fakeIngredientRepo struct {
	store *fakeStore
}

func (r *fakeIngredientRepo) Create(ing *entity.Ingredient) error {
	r.store.catalog[ing.ID] = ing
	return nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return r.store.catalog[id], nil
}

func (r *fakeIngredientRepo) Update(ing *entity.Ingredient) error {
	r.store.catalog[ing.ID] = ing
	return nil
}

func (r *fakeIngredientRepo) List(limit, offset int) ([]*entity.Ingredient, error) {
	var list []*entity.Ingredient
	for _, ing := range r.store.catalog {
		list = append(list, ing)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// fakeAudit acumula los eventos publicados.
type fakeAudit struct {
	mu     sync.Mutex
	events []apptransfer.AuditEvent
}

func (a *fakeAudit) PublishTransferEvent(_ context.Context, event apptransfer.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *fakeAudit) byType(eventType string) []apptransfer.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []apptransfer.AuditEvent
	for _, e := range a.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	centralID = "outlet-central"
	branchID  = "outlet-sucursal-norte"
	actorID   = "user-test"
)

type fixture struct {
	store          *fakeStore
	txRunner       *fakeTxRunner
	transferRepo   *fakeTransferRepo
	stockRepo      *fakeStockRepo
	outletRepo     *fakeOutletRepo
	ingredientRepo *fakeIngredientRepo
	audit          *fakeAudit

	request     *apptransfer.RequestUseCase
	fulfillment *apptransfer.FulfillmentUseCase
	receiving   *apptransfer.ReceivingUseCase
	listing     *apptransfer.ListingUseCase
}

// newFixture arma el grafo de casos de uso sobre fakes, con una central, una
// sucursal y un catálogo mínimo ya cargados.
func newFixture() *fixture {
	store := newFakeStore()
	f := &fixture{
		store:          store,
		txRunner:       &fakeTxRunner{store: store},
		transferRepo:   &fakeTransferRepo{store: store},
		stockRepo:      &fakeStockRepo{store: store},
		outletRepo:     &fakeOutletRepo{store: store},
		ingredientRepo: &fakeIngredientRepo{store: store},
		audit:          &fakeAudit{},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	f.request = apptransfer.NewRequestUseCase(f.txRunner, f.transferRepo, f.outletRepo, f.ingredientRepo, f.audit, log)
	f.fulfillment = apptransfer.NewFulfillmentUseCase(f.txRunner, f.transferRepo, f.outletRepo, f.audit, log)
	f.receiving = apptransfer.NewReceivingUseCase(f.txRunner, f.transferRepo, f.audit, log)
	f.listing = apptransfer.NewListingUseCase(f.transferRepo)

	now := time.Now()
	store.outlets[centralID] = &entity.Outlet{ID: centralID, Name: "Bodega Central", Role: entity.OutletRoleCentral, CreatedAt: now, UpdatedAt: now}
	store.outlets[branchID] = &entity.Outlet{ID: branchID, Name: "Sucursal Norte", Role: entity.OutletRoleBranch, CreatedAt: now, UpdatedAt: now}

	store.catalog["ing-harina"] = &entity.Ingredient{ID: "ing-harina", Name: "Harina de trigo", Unit: "kg", Active: true, CreatedAt: now, UpdatedAt: now}
	store.catalog["ing-aceite"] = &entity.Ingredient{ID: "ing-aceite", Name: "Aceite", Unit: "l", Active: true, CreatedAt: now, UpdatedAt: now}
	store.catalog["ing-descontinuado"] = &entity.Ingredient{ID: "ing-descontinuado", Name: "Margarina", Unit: "kg", Active: false, CreatedAt: now, UpdatedAt: now}
	return f
}

// setStock fija la existencia de un insumo en un outlet.
func (f *fixture) setStock(outletID, ingredientID, qty string) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.stocks[stockKey(outletID, ingredientID)] = decimal.RequireFromString(qty)
}

// stockOf lee la existencia actual de un insumo en un outlet.
func (f *fixture) stockOf(outletID, ingredientID string) decimal.Decimal {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.stocks[stockKey(outletID, ingredientID)]
}
