package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
	"github.com/jhoicas/sga-pro-api/pkg/logger"
)

// LedgerUseCase es el punto único por el que pasa todo cambio de stock.
// Cada operación pública corre en una transacción (TxRunner) con bloqueo de
// fila (SELECT FOR UPDATE) sobre el registro (producto, ubicación), de modo
// que dos escritores concurrentes del mismo registro se serializan y el
// read-check-write es indivisible.
//
// Las variantes ...InTx operan sobre repositorios ya atados a una transacción;
// los flujos de recepción y despacho las reutilizan dentro de su propia tx.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // atado al pool, solo lecturas
	auditRepo repository.AuditLogRepository
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso del libro de inventario.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	auditRepo repository.AuditLogRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, stockRepo: stockRepo, auditRepo: auditRepo, log: log}
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones dentro de transacción (reutilizables por recepción/despacho)
// ──────────────────────────────────────────────────────────────────────────────

// AddStockInTx suma stock creando el registro si no existe. Verifica que el
// producto y la ubicación existan y que la suma no exceda la capacidad de la
// ubicación (también contando lo almacenado de otros productos).
func (uc *LedgerUseCase) AddStockInTx(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	productID, locationID string,
	qty int,
	now time.Time,
) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	location, err := locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}

	// Bloquea la fila para que el check de capacidad y la escritura sean indivisibles.
	rec, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	stored, err := stockRepo.SumQuantityAtLocation(locationID)
	if err != nil {
		return nil, err
	}
	if stored+qty > location.Capacity {
		return nil, domain.ErrCapacityExceeded
	}

	if rec == nil {
		rec = &entity.StockRecord{
			ID:         uuid.New().String(),
			ProductID:  productID,
			LocationID: locationID,
		}
	}
	rec.Quantity += qty
	rec.LastUpdated = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RemoveStockInTx resta stock físico. No puede retirar lo reservado para otros:
// falla con ErrInsufficientStock si qty excede cantidad - reservado.
func (uc *LedgerUseCase) RemoveStockInTx(
	stockRepo repository.StockRepository,
	productID, locationID string,
	qty int,
	now time.Time,
) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrStockNotFound
	}
	if qty > rec.Available() {
		return nil, domain.ErrInsufficientStock
	}
	rec.Quantity -= qty
	rec.LastUpdated = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ReserveStockInTx aparta unidades para un pedido saliente sin retirarlas.
func (uc *LedgerUseCase) ReserveStockInTx(
	stockRepo repository.StockRepository,
	productID, locationID string,
	qty int,
	now time.Time,
) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrStockNotFound
	}
	if qty > rec.Available() {
		return nil, domain.ErrInsufficientAvailable
	}
	rec.ReservedQuantity += qty
	rec.LastUpdated = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UnreserveStockInTx libera unidades reservadas (cancelación o fin de picking).
func (uc *LedgerUseCase) UnreserveStockInTx(
	stockRepo repository.StockRepository,
	productID, locationID string,
	qty int,
	now time.Time,
) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrStockNotFound
	}
	if qty > rec.ReservedQuantity {
		return nil, domain.ErrOverRelease
	}
	rec.ReservedQuantity -= qty
	rec.LastUpdated = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AdjustStockInTx corrección absoluta (conteo cíclico): reemplaza la cantidad.
// Si no hay registro se comporta como AddStockInTx. No toca la reserva: si
// queda reservado > cantidad, la inconsistencia se deja visible para revisión
// manual (el caller la registra en auditoría), no se corrige en silencio.
func (uc *LedgerUseCase) AdjustStockInTx(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	productID, locationID string,
	newQty int,
	now time.Time,
) (*entity.StockRecord, error) {
	if newQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return uc.AddStockInTx(stockRepo, productRepo, locationRepo, productID, locationID, newQty, now)
	}
	location, err := locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	stored, err := stockRepo.SumQuantityAtLocation(locationID)
	if err != nil {
		return nil, err
	}
	if stored-rec.Quantity+newQty > location.Capacity {
		return nil, domain.ErrCapacityExceeded
	}
	rec.Quantity = newQty
	rec.LastUpdated = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones públicas (una transacción por llamada)
// ──────────────────────────────────────────────────────────────────────────────

// AddStock suma stock a una ubicación. Falla con ErrCapacityExceeded si la
// ubicación no tiene espacio.
func (uc *LedgerUseCase) AddStock(ctx context.Context, actorID, productID, locationID string, qty int) (*dto.StockRecordResponse, error) {
	var rec *entity.StockRecord
	var before int
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		var err error
		rec, err = uc.AddStockInTx(stockRepo, productRepo, locationRepo, productID, locationID, qty, now)
		if rec != nil {
			before = rec.Quantity - qty
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "inventory.add", rec.ID,
		fmt.Sprintf("producto %s ubicación %s: cantidad %d -> %d", productID, locationID, before, rec.Quantity))
	return toStockResponse(rec), nil
}

// RemoveStock resta stock físico respetando las reservas vigentes.
func (uc *LedgerUseCase) RemoveStock(ctx context.Context, actorID, productID, locationID string, qty int) (*dto.StockRecordResponse, error) {
	var rec *entity.StockRecord
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		var err error
		rec, err = uc.RemoveStockInTx(stockRepo, productID, locationID, qty, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "inventory.remove", rec.ID,
		fmt.Sprintf("producto %s ubicación %s: cantidad %d -> %d", productID, locationID, rec.Quantity+qty, rec.Quantity))
	return toStockResponse(rec), nil
}

// ReserveStock aparta unidades para un pedido.
func (uc *LedgerUseCase) ReserveStock(ctx context.Context, actorID, productID, locationID string, qty int) (*dto.StockRecordResponse, error) {
	var rec *entity.StockRecord
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		var err error
		rec, err = uc.ReserveStockInTx(stockRepo, productID, locationID, qty, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "inventory.reserve", rec.ID,
		fmt.Sprintf("producto %s ubicación %s: reservado %d -> %d", productID, locationID, rec.ReservedQuantity-qty, rec.ReservedQuantity))
	return toStockResponse(rec), nil
}

// UnreserveStock libera unidades reservadas.
func (uc *LedgerUseCase) UnreserveStock(ctx context.Context, actorID, productID, locationID string, qty int) (*dto.StockRecordResponse, error) {
	var rec *entity.StockRecord
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		var err error
		rec, err = uc.UnreserveStockInTx(stockRepo, productID, locationID, qty, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "inventory.unreserve", rec.ID,
		fmt.Sprintf("producto %s ubicación %s: reservado %d -> %d", productID, locationID, rec.ReservedQuantity+qty, rec.ReservedQuantity))
	return toStockResponse(rec), nil
}

// AdjustStock corrección absoluta por conteo cíclico.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, actorID, productID, locationID string, newQty int, reason string) (*dto.StockRecordResponse, error) {
	var rec *entity.StockRecord
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		var err error
		rec, err = uc.AdjustStockInTx(stockRepo, productRepo, locationRepo, productID, locationID, newQty, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rec.ReservedQuantity > rec.Quantity {
		// Inconsistencia legal tras un ajuste a la baja: se deja para revisión manual.
		uc.log.Warn().
			Str("product_id", productID).
			Str("location_id", locationID).
			Int("quantity", rec.Quantity).
			Int("reserved", rec.ReservedQuantity).
			Msg("ajuste dejó reservado > cantidad")
	}
	uc.audit(ctx, actorID, "inventory.adjust", rec.ID,
		fmt.Sprintf("producto %s ubicación %s: cantidad ajustada a %d (reservado %d), motivo: %s",
			productID, locationID, rec.Quantity, rec.ReservedQuantity, reason))
	return toStockResponse(rec), nil
}

// MoveStock traslada stock entre ubicaciones en una sola transacción:
// si la suma en destino falla (capacidad), la resta en origen se revierte con
// el rollback; el libro nunca pierde unidades "en tránsito".
func (uc *LedgerUseCase) MoveStock(ctx context.Context, actorID, productID, fromLocationID, toLocationID string, qty int) (*dto.MoveStockResponse, error) {
	if fromLocationID == toLocationID {
		return nil, domain.ErrSameLocation
	}
	var from, to *entity.StockRecord
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		var err error
		from, err = uc.RemoveStockInTx(stockRepo, productID, fromLocationID, qty, now)
		if err != nil {
			return err
		}
		to, err = uc.AddStockInTx(stockRepo, productRepo, locationRepo, productID, toLocationID, qty, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "inventory.move", from.ID,
		fmt.Sprintf("producto %s: %d unidades de %s a %s", productID, qty, fromLocationID, toLocationID))
	return &dto.MoveStockResponse{From: *toStockResponse(from), To: *toStockResponse(to)}, nil
}

// GetStockLevel devuelve el stock total de un producto; locationID vacío suma
// todas las ubicaciones. Devuelve 0 si no hay registros, nunca falla por ausencia.
func (uc *LedgerUseCase) GetStockLevel(ctx context.Context, productID, locationID string) (*dto.StockLevelResponse, error) {
	total, err := uc.stockRepo.SumQuantity(productID, locationID)
	if err != nil {
		return nil, err
	}
	return &dto.StockLevelResponse{ProductID: productID, LocationID: locationID, StockLevel: total}, nil
}

// List lista los registros del libro con filtros y paginación.
func (uc *LedgerUseCase) List(ctx context.Context, f repository.StockFilter) (*dto.StockListResponse, error) {
	records, total, err := uc.stockRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, *toStockResponse(rec))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// audit registra la operación en el log de auditoría después del commit.
// Best-effort: un fallo se reporta en el log y no afecta la operación.
func (uc *LedgerUseCase) audit(ctx context.Context, actorID, operation, entityID, detail string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     actorID,
		Operation:  operation,
		EntityKind: "stock_record",
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("operation", operation).Msg("no se pudo registrar auditoría")
	}
}

func toStockResponse(rec *entity.StockRecord) *dto.StockRecordResponse {
	if rec == nil {
		return nil
	}
	return &dto.StockRecordResponse{
		ID:               rec.ID,
		ProductID:        rec.ProductID,
		LocationID:       rec.LocationID,
		Quantity:         rec.Quantity,
		ReservedQuantity: rec.ReservedQuantity,
		Available:        rec.Available(),
		LastUpdated:      rec.LastUpdated,
	}
}
