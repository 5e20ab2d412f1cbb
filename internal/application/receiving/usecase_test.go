package receiving_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/application/inventory"
	"github.com/jhoicas/sga-pro-api/internal/application/receiving"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
	"github.com/jhoicas/sga-pro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

type memStockRepo struct {
	records map[string]*entity.StockRecord
}

func (r *memStockRepo) Get(productID, locationID string) (*entity.StockRecord, error) {
	rec, ok := r.records[stockKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(productID, locationID string) (*entity.StockRecord, error) {
	return r.Get(productID, locationID)
}

func (r *memStockRepo) Upsert(rec *entity.StockRecord) error {
	cp := *rec
	r.records[stockKey(rec.ProductID, rec.LocationID)] = &cp
	return nil
}

func (r *memStockRepo) List(f repository.StockFilter) ([]*entity.StockRecord, int, error) {
	return nil, 0, nil
}

func (r *memStockRepo) SumQuantity(productID, locationID string) (int, error) {
	total := 0
	for _, rec := range r.records {
		if rec.ProductID == productID && (locationID == "" || rec.LocationID == locationID) {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *memStockRepo) SumQuantityAtLocation(locationID string) (int, error) {
	total := 0
	for _, rec := range r.records {
		if rec.LocationID == locationID {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *memStockRepo) snapshot() map[string]*entity.StockRecord {
	snap := make(map[string]*entity.StockRecord, len(r.records))
	for k, v := range r.records {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

type memProductRepo struct{ products map[string]*entity.Product }

func (r *memProductRepo) Create(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
func (r *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

type memLocationRepo struct{ locations map[string]*entity.Location }

func (r *memLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *memLocationRepo) GetByCode(code string) (*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) Update(l *entity.Location) error                 { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) Delete(id string) error                          { delete(r.locations, id); return nil }
func (r *memLocationRepo) List(f repository.LocationFilter) ([]*entity.Location, int, error) {
	return nil, 0, nil
}

type memSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (r *memSupplierRepo) Create(s *entity.Supplier) error             { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) { return r.suppliers[id], nil }
func (r *memSupplierRepo) Update(s *entity.Supplier) error             { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) Delete(id string) error                      { delete(r.suppliers, id); return nil }
func (r *memSupplierRepo) List(f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

type memAuditRepo struct{ entries []*entity.AuditLog }

func (r *memAuditRepo) Record(ctx context.Context, log *entity.AuditLog) error {
	r.entries = append(r.entries, log)
	return nil
}
func (r *memAuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, int, error) {
	return r.entries, len(r.entries), nil
}

func copyShipment(s *entity.InboundShipment) *entity.InboundShipment {
	cp := *s
	cp.Items = make([]*entity.ShipmentItem, len(s.Items))
	for i, item := range s.Items {
		ic := *item
		cp.Items[i] = &ic
	}
	return &cp
}

type memShipmentRepo struct {
	shipments map[string]*entity.InboundShipment
}

func (r *memShipmentRepo) Create(s *entity.InboundShipment) error {
	r.shipments[s.ID] = copyShipment(s)
	return nil
}

func (r *memShipmentRepo) GetByID(id string) (*entity.InboundShipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, nil
	}
	return copyShipment(s), nil
}

func (r *memShipmentRepo) GetByIDForUpdate(id string) (*entity.InboundShipment, error) {
	return r.GetByID(id)
}

func (r *memShipmentRepo) Update(s *entity.InboundShipment) error {
	stored, ok := r.shipments[s.ID]
	if !ok {
		return nil
	}
	stored.Status = s.Status
	stored.ExpectedAt = s.ExpectedAt
	stored.ReceivedAt = s.ReceivedAt
	return nil
}

func (r *memShipmentRepo) UpdateItem(item *entity.ShipmentItem) error {
	stored, ok := r.shipments[item.ShipmentID]
	if !ok {
		return nil
	}
	for i, existing := range stored.Items {
		if existing.ID == item.ID {
			ic := *item
			stored.Items[i] = &ic
		}
	}
	return nil
}

func (r *memShipmentRepo) Delete(id string) error { delete(r.shipments, id); return nil }

func (r *memShipmentRepo) List(f repository.ShipmentFilter) ([]*entity.InboundShipment, int, error) {
	var out []*entity.InboundShipment
	for _, s := range r.shipments {
		out = append(out, copyShipment(s))
	}
	return out, len(out), nil
}

func (r *memShipmentRepo) snapshot() map[string]*entity.InboundShipment {
	snap := make(map[string]*entity.InboundShipment, len(r.shipments))
	for k, v := range r.shipments {
		snap[k] = copyShipment(v)
	}
	return snap
}

// receivingTxRunner emula la atomicidad del flujo de recepción: si fn falla,
// tanto el libro de inventario como los envíos vuelven al estado previo.
type receivingTxRunner struct {
	shipments *memShipmentRepo
	stock     *memStockRepo
	products  *memProductRepo
	locations *memLocationRepo
}

func (r *receivingTxRunner) RunReceiving(ctx context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) error) error {
	stockSnap := r.stock.snapshot()
	shipSnap := r.shipments.snapshot()
	if err := fn(r.shipments, r.stock, r.products, r.locations); err != nil {
		r.stock.records = stockSnap
		r.shipments.shipments = shipSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodA      = "prod-a"
	prodB      = "prod-b"
	locA       = "loc-a" // capacidad 100
	supplierID = "supplier-1"
	actor      = "user-1"
)

type shipmentFixture struct {
	uc        *receiving.ShipmentUseCase
	shipments *memShipmentRepo
	stock     *memStockRepo
	audit     *memAuditRepo
}

func newShipmentFixture(t *testing.T) *shipmentFixture {
	t.Helper()
	stock := &memStockRepo{records: map[string]*entity.StockRecord{}}
	products := &memProductRepo{products: map[string]*entity.Product{
		prodA: {ID: prodA, SKU: "SKU-A", Name: "Producto A"},
		prodB: {ID: prodB, SKU: "SKU-B", Name: "Producto B"},
	}}
	locations := &memLocationRepo{locations: map[string]*entity.Location{
		locA: {ID: locA, Code: "A-01-01", Capacity: 100},
	}}
	suppliers := &memSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Proveedor Uno"},
	}}
	shipments := &memShipmentRepo{shipments: map[string]*entity.InboundShipment{}}
	audit := &memAuditRepo{}
	tx := &receivingTxRunner{shipments: shipments, stock: stock, products: products, locations: locations}
	log := logger.Nop()

	// Solo se usan las variantes ...InTx del libro; el runner propio no se invoca.
	ledger := inventory.NewLedgerUseCase(nil, stock, audit, log)
	return &shipmentFixture{
		uc:        receiving.NewShipmentUseCase(tx, shipments, suppliers, ledger, audit, log),
		shipments: shipments,
		stock:     stock,
		audit:     audit,
	}
}

func (f *shipmentFixture) create(t *testing.T, items ...dto.ShipmentItemRequest) *dto.ShipmentResponse {
	t.Helper()
	resp, err := f.uc.CreateShipment(context.Background(), actor, dto.CreateShipmentRequest{
		SupplierID: supplierID,
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateShipment
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateShipment_IniciaPendienteConRecibidoCero(t *testing.T) {
	f := newShipmentFixture(t)

	resp := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 40},
		dto.ShipmentItemRequest{ProductID: prodB, LocationID: locA, QuantityExpected: 10},
	)

	assert.Equal(t, string(entity.ShipmentPending), resp.Status)
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.Zero(t, item.QuantityReceived)
	}
	assert.Len(t, f.audit.entries, 1)
}

func TestCreateShipment_ProveedorInexistente(t *testing.T) {
	f := newShipmentFixture(t)
	_, err := f.uc.CreateShipment(context.Background(), actor, dto.CreateShipmentRequest{
		SupplierID: "no-existe",
		Items:      []dto.ShipmentItemRequest{{ProductID: prodA, LocationID: locA, QuantityExpected: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestCreateShipment_ProductoInexistente_NoPersiste(t *testing.T) {
	f := newShipmentFixture(t)
	_, err := f.uc.CreateShipment(context.Background(), actor, dto.CreateShipmentRequest{
		SupplierID: supplierID,
		Items:      []dto.ShipmentItemRequest{{ProductID: "no-existe", LocationID: locA, QuantityExpected: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, f.shipments.shipments)
}

func TestCreateShipment_SinLineas(t *testing.T) {
	f := newShipmentFixture(t)
	_, err := f.uc.CreateShipment(context.Background(), actor, dto.CreateShipmentRequest{SupplierID: supplierID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveShipment
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveShipment_SumaAlInventarioYCompleta(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 40},
	)

	resp, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, QuantityReceived: 40}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.ShipmentCompleted), resp.Status)
	require.NotNil(t, resp.ReceivedAt)
	assert.Equal(t, 40, resp.Items[0].QuantityReceived)

	total, err := f.stock.SumQuantity(prodA, locA)
	require.NoError(t, err)
	assert.Equal(t, 40, total, "lo recibido debe quedar sumado al libro")
}

// Recepción parcial: lo recibido puede ser menor que lo esperado; al libro
// solo entra lo realmente recibido.
func TestReceiveShipment_Parcial(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 40},
		dto.ShipmentItemRequest{ProductID: prodB, LocationID: locA, QuantityExpected: 10},
	)

	resp, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{
			{ProductID: prodA, QuantityReceived: 25},
			{ProductID: prodB, QuantityReceived: 0}, // línea faltante completa
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShipmentCompleted), resp.Status)

	totalA, _ := f.stock.SumQuantity(prodA, locA)
	totalB, _ := f.stock.SumQuantity(prodB, locA)
	assert.Equal(t, 25, totalA)
	assert.Equal(t, 0, totalB, "una línea recibida en 0 no crea registro de stock")
}

// Un producto ajeno al envío en mitad de la lista revierte TODO: ni las líneas
// anteriores quedan aplicadas al libro ni el envío cambia de estado.
func TestReceiveShipment_ProductoAjeno_RevierteTodo(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 40},
	)

	_, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{
			{ProductID: prodA, QuantityReceived: 40},
			{ProductID: "intruso", QuantityReceived: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotInShipment)

	total, _ := f.stock.SumQuantity(prodA, locA)
	assert.Zero(t, total, "la línea válida previa no debe quedar aplicada")

	stored := f.shipments.shipments[created.ID]
	assert.Equal(t, entity.ShipmentPending, stored.Status, "el envío debe seguir pendiente")
	assert.Zero(t, stored.Items[0].QuantityReceived)
}

func TestReceiveShipment_CapacidadExcedida_RevierteTodo(t *testing.T) {
	f := newShipmentFixture(t)
	// locA capacidad 100, ya con 80 unidades almacenadas
	f.stock.records[stockKey(prodB, locA)] = &entity.StockRecord{
		ID: "seed", ProductID: prodB, LocationID: locA, Quantity: 80, LastUpdated: time.Now(),
	}
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 30},
	)

	_, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, QuantityReceived: 30}},
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	stored := f.shipments.shipments[created.ID]
	assert.Equal(t, entity.ShipmentPending, stored.Status)
}

func TestReceiveShipment_EnvioCompletado_EsInmutable(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 10},
	)
	_, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, QuantityReceived: 10}},
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, QuantityReceived: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrShipmentCompleted)

	total, _ := f.stock.SumQuantity(prodA, locA)
	assert.Equal(t, 10, total, "la segunda recepción no debe duplicar stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateShipment_TransicionValida(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 10},
	)

	next := string(entity.ShipmentInProgress)
	resp, err := f.uc.UpdateShipment(context.Background(), actor, created.ID, dto.UpdateShipmentRequest{Status: &next})
	require.NoError(t, err)
	assert.Equal(t, next, resp.Status)
}

func TestUpdateShipment_RetrocesoInvalido(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 10},
	)
	next := string(entity.ShipmentInProgress)
	_, err := f.uc.UpdateShipment(context.Background(), actor, created.ID, dto.UpdateShipmentRequest{Status: &next})
	require.NoError(t, err)

	back := string(entity.ShipmentPending)
	_, err = f.uc.UpdateShipment(context.Background(), actor, created.ID, dto.UpdateShipmentRequest{Status: &back})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteShipment_SoloPendiente(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 10},
	)
	_, err := f.uc.ReceiveShipment(context.Background(), actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, QuantityReceived: 10}},
	})
	require.NoError(t, err)

	err = f.uc.DeleteShipment(context.Background(), actor, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteShipment_PendienteSeElimina(t *testing.T) {
	f := newShipmentFixture(t)
	created := f.create(t,
		dto.ShipmentItemRequest{ProductID: prodA, LocationID: locA, QuantityExpected: 10},
	)

	require.NoError(t, f.uc.DeleteShipment(context.Background(), actor, created.ID))
	_, err := f.uc.GetShipment(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
