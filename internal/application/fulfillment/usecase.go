package fulfillment

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

// OrderUseCase maneja los pedidos salientes: CRUD y el flujo
// PENDIENTE → EN_PICKING → EMPACADO → ENVIADO. Crear un pedido reserva stock
// por cada línea; el picking libera la reserva completa y descuenta lo tomado.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository // atado al pool, solo lecturas
	ledger    *inventory.LedgerUseCase
	auditRepo repository.AuditLogRepository
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	ledger *inventory.LedgerUseCase,
	auditRepo repository.AuditLogRepository,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, ledger: ledger, auditRepo: auditRepo, log: log}
}

// CreateOrder crea un pedido en PENDIENTE reservando stock por cada línea en
// una sola transacción. Si alguna reserva falla por disponibilidad, todo se
// revierte: no hay pedido parcial ni reserva parcial.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.LocationID == "" || item.QuantityOrdered <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.OutboundOrder{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		Status:       entity.OrderPending,
		CreatedAt:    now,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			LocationID:      item.LocationID,
			QuantityOrdered: item.QuantityOrdered,
		})
	}

	err := uc.txRunner.RunFulfillment(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		for _, item := range order.Items {
			if _, err := uc.ledger.ReserveStockInTx(stockRepo, item.ProductID, item.LocationID, item.QuantityOrdered, now); err != nil {
				return err
			}
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "order.create", order.ID,
		fmt.Sprintf("pedido de %s con %d líneas reservadas", in.CustomerName, len(order.Items)))
	return toOrderResponse(order), nil
}

// GetOrder obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista pedidos con filtros y paginación.
func (uc *OrderUseCase) ListOrders(ctx context.Context, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	list, total, err := uc.orderRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// UpdateOrder actualiza cliente o estado. Un pedido ENVIADO es inmutable.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, actorID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderShipped {
		return nil, domain.ErrInvalidTransition
	}
	if in.CustomerName != nil {
		if *in.CustomerName == "" {
			return nil, domain.ErrInvalidInput
		}
		order.CustomerName = *in.CustomerName
	}
	if in.Status != nil {
		next := entity.OrderStatus(*in.Status)
		if !next.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		if next != order.Status && !order.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		order.Status = next
	}
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "order.update", order.ID, fmt.Sprintf("estado %s", order.Status))
	return toOrderResponse(order), nil
}

// DeleteOrder elimina un pedido PENDIENTE liberando la reserva de cada línea
// en la misma transacción del borrado.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, actorID, id string) error {
	now := time.Now()
	err := uc.txRunner.RunFulfillment(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderPending {
			return domain.ErrInvalidTransition
		}
		for _, item := range order.Items {
			if _, err := uc.ledger.UnreserveStockInTx(stockRepo, item.ProductID, item.LocationID, item.QuantityOrdered, now); err != nil {
				return err
			}
		}
		return orderRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.audit(ctx, actorID, "order.delete", id, "pedido pendiente eliminado, reservas liberadas")
	return nil
}

// PickOrder procesa el picking en una sola transacción: por cada línea fija la
// cantidad tomada, libera la reserva original completa (aun con picking
// parcial) y descuenta del libro lo tomado. Deja el pedido en EMPACADO.
// Cualquier fallo revierte todo.
func (uc *OrderUseCase) PickOrder(ctx context.Context, actorID, orderID string, in dto.PickOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.QuantityPicked < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.OutboundOrder
	now := time.Now()
	err := uc.txRunner.RunFulfillment(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		var err error
		order, err = orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderShipped {
			return domain.ErrOrderShipped
		}

		order.Status = entity.OrderPicking
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		for _, line := range in.Items {
			item := order.FindItemByProduct(line.ProductID)
			if item == nil {
				return domain.ErrItemNotInOrder
			}
			item.QuantityPicked = line.QuantityPicked
			if err := orderRepo.UpdateItem(item); err != nil {
				return err
			}
			// La reserva se libera completa aunque el picking sea parcial.
			if _, err := uc.ledger.UnreserveStockInTx(stockRepo, item.ProductID, item.LocationID, item.QuantityOrdered, now); err != nil {
				return err
			}
			if line.QuantityPicked > 0 {
				if _, err := uc.ledger.RemoveStockInTx(stockRepo, item.ProductID, item.LocationID, line.QuantityPicked, now); err != nil {
					return err
				}
			}
		}

		order.Status = entity.OrderPacked
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "order.pick", order.ID,
		fmt.Sprintf("picking completado con %d líneas, pedido empacado", len(in.Items)))
	return toOrderResponse(order), nil
}

// ShipOrder marca el pedido como ENVIADO. Requiere estado EMPACADO.
func (uc *OrderUseCase) ShipOrder(ctx context.Context, actorID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderPacked {
		return nil, domain.ErrOrderNotPacked
	}
	now := time.Now()
	order.Status = entity.OrderShipped
	order.ShippedAt = &now
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "order.ship", order.ID, "pedido enviado")
	return toOrderResponse(order), nil
}

// audit registra la operación después del commit; best-effort.
func (uc *OrderUseCase) audit(ctx context.Context, actorID, operation, entityID, detail string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     actorID,
		Operation:  operation,
		EntityKind: "outbound_order",
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("operation", operation).Msg("no se pudo registrar auditoría")
	}
}

func toOrderResponse(o *entity.OutboundOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		ShippedAt:    o.ShippedAt,
		Items:        make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			LocationID:      item.LocationID,
			QuantityOrdered: item.QuantityOrdered,
			QuantityPicked:  item.QuantityPicked,
		})
	}
	return resp
}
