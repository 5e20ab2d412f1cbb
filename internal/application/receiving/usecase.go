package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/application/inventory"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
	"github.com/jhoicas/sga-pro-api/pkg/logger"
)

// ShipmentUseCase maneja los envíos entrantes: CRUD y el flujo de recepción
// PENDIENTE → EN_PROCESO → COMPLETADO. Las sumas al inventario pasan por el
// libro (LedgerUseCase) dentro de la misma transacción del envío.
type ShipmentUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository // atado al pool, solo lecturas
	supplierRepo repository.SupplierRepository
	ledger       *inventory.LedgerUseCase
	auditRepo    repository.AuditLogRepository
	log          *logger.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	txRunner TxRunner,
	shipmentRepo repository.ShipmentRepository,
	supplierRepo repository.SupplierRepository,
	ledger *inventory.LedgerUseCase,
	auditRepo repository.AuditLogRepository,
	log *logger.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// CreateShipment crea un envío en PENDIENTE con sus líneas (recibido = 0).
func (uc *ShipmentUseCase) CreateShipment(ctx context.Context, actorID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.LocationID == "" || item.QuantityExpected <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	now := time.Now()
	shipment := &entity.InboundShipment{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.ShipmentPending,
		ExpectedAt: in.ExpectedAt,
		CreatedAt:  now,
	}
	for _, item := range in.Items {
		shipment.Items = append(shipment.Items, &entity.ShipmentItem{
			ID:               uuid.New().String(),
			ShipmentID:       shipment.ID,
			ProductID:        item.ProductID,
			LocationID:       item.LocationID,
			QuantityExpected: item.QuantityExpected,
		})
	}

	err = uc.txRunner.RunReceiving(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		_ repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		for _, item := range shipment.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			location, err := locationRepo.GetByID(item.LocationID)
			if err != nil {
				return err
			}
			if location == nil {
				return domain.ErrLocationNotFound
			}
		}
		return shipmentRepo.Create(shipment)
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "shipment.create", shipment.ID,
		fmt.Sprintf("envío de proveedor %s con %d líneas", in.SupplierID, len(shipment.Items)))
	return toShipmentResponse(shipment), nil
}

// GetShipment obtiene un envío con sus líneas.
func (uc *ShipmentUseCase) GetShipment(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	return toShipmentResponse(shipment), nil
}

// ListShipments lista envíos con filtros y paginación.
func (uc *ShipmentUseCase) ListShipments(ctx context.Context, f repository.ShipmentFilter) (*dto.ShipmentListResponse, error) {
	list, total, err := uc.shipmentRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShipmentResponse(s))
	}
	return &dto.ShipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// UpdateShipment actualiza fecha esperada o estado. Un envío COMPLETADO es
// inmutable.
func (uc *ShipmentUseCase) UpdateShipment(ctx context.Context, actorID, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	if shipment.Status == entity.ShipmentCompleted {
		return nil, domain.ErrInvalidTransition
	}
	if in.ExpectedAt != nil {
		shipment.ExpectedAt = in.ExpectedAt
	}
	if in.Status != nil {
		next := entity.ShipmentStatus(*in.Status)
		if !next.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		if next != shipment.Status && !shipment.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		shipment.Status = next
	}
	if err := uc.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "shipment.update", shipment.ID, fmt.Sprintf("estado %s", shipment.Status))
	return toShipmentResponse(shipment), nil
}

// DeleteShipment elimina un envío y sus líneas. Solo válido en PENDIENTE.
func (uc *ShipmentUseCase) DeleteShipment(ctx context.Context, actorID, id string) error {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if shipment == nil {
		return domain.ErrNotFound
	}
	if shipment.Status != entity.ShipmentPending {
		return domain.ErrInvalidTransition
	}
	if err := uc.shipmentRepo.Delete(id); err != nil {
		return err
	}
	uc.audit(ctx, actorID, "shipment.delete", id, "envío pendiente eliminado")
	return nil
}

// ReceiveShipment procesa la recepción de un envío en una sola transacción:
// fija las cantidades recibidas, suma al inventario cada línea con cantidad > 0
// y deja el envío en COMPLETADO. Cualquier fallo (producto ajeno al envío,
// capacidad excedida) revierte todo: ni el envío ni el libro cambian.
func (uc *ShipmentUseCase) ReceiveShipment(ctx context.Context, actorID, shipmentID string, in dto.ReceiveShipmentRequest) (*dto.ShipmentResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.QuantityReceived < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var shipment *entity.InboundShipment
	now := time.Now()
	err := uc.txRunner.RunReceiving(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		var err error
		shipment, err = shipmentRepo.GetByIDForUpdate(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		if shipment.Status == entity.ShipmentCompleted {
			return domain.ErrShipmentCompleted
		}

		shipment.Status = entity.ShipmentInProgress
		if err := shipmentRepo.Update(shipment); err != nil {
			return err
		}

		for _, line := range in.Items {
			item := shipment.FindItemByProduct(line.ProductID)
			if item == nil {
				return domain.ErrItemNotInShipment
			}
			item.QuantityReceived = line.QuantityReceived
			if err := shipmentRepo.UpdateItem(item); err != nil {
				return err
			}
			if line.QuantityReceived > 0 {
				if _, err := uc.ledger.AddStockInTx(stockRepo, productRepo, locationRepo,
					item.ProductID, item.LocationID, line.QuantityReceived, now); err != nil {
					return err
				}
			}
		}

		shipment.Status = entity.ShipmentCompleted
		shipment.ReceivedAt = &now
		return shipmentRepo.Update(shipment)
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "shipment.receive", shipment.ID,
		fmt.Sprintf("envío completado con %d líneas recibidas", len(in.Items)))
	return toShipmentResponse(shipment), nil
}

// audit registra la operación después del commit; best-effort.
func (uc *ShipmentUseCase) audit(ctx context.Context, actorID, operation, entityID, detail string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     actorID,
		Operation:  operation,
		EntityKind: "inbound_shipment",
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("operation", operation).Msg("no se pudo registrar auditoría")
	}
}

func toShipmentResponse(s *entity.InboundShipment) *dto.ShipmentResponse {
	if s == nil {
		return nil
	}
	resp := &dto.ShipmentResponse{
		ID:         s.ID,
		SupplierID: s.SupplierID,
		Status:     string(s.Status),
		ExpectedAt: s.ExpectedAt,
		ReceivedAt: s.ReceivedAt,
		CreatedAt:  s.CreatedAt,
		Items:      make([]dto.ShipmentItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.ShipmentItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			LocationID:       item.LocationID,
			QuantityExpected: item.QuantityExpected,
			QuantityReceived: item.QuantityReceived,
		})
	}
	return resp
}
