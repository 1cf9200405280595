package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

// OrderUseCase escrituras mínimas de pedidos; alimentan los contadores del dashboard.
type OrderUseCase struct {
	repo repository.OrderRepository
	now  func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, now: time.Now}
}

// Create registra un pedido pendiente en la empresa del actor.
func (uc *OrderUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	order := &entity.Order{
		ID:        uuid.NewString(),
		CompanyID: actor.CompanyID,
		CreatedBy: actor.ID,
		Reference: strings.TrimSpace(in.Reference),
		Total:     in.Total.Round(2),
		Status:    entity.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateStatus mueve un pedido pendiente a completed o cancelled.
// domain.ErrNotFound si el pedido no es de la empresa; domain.ErrConflict si ya es terminal.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, companyID, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	order, err := uc.repo.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrConflict, order.Status, next)
	}
	if err := uc.repo.UpdateStatus(ctx, companyID, orderID, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = uc.now().UTC()
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		CreatedBy: o.CreatedBy,
		Reference: o.Reference,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
