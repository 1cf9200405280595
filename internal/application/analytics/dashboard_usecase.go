// Package analytics contiene el agregador de estadísticas del dashboard.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

// DashboardUseCase calcula los contadores del dashboard para una empresa.
//
// Fuente de datos: StatsRepository (consultas read-only). El resultado se calcula
// en cada petición; no se guarda ni se cachea.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// GetStats construye el DashboardStatsDTO para la empresa del llamante.
//
// Las ocho consultas son independientes y corren en paralelo; el resultado es una
// foto aproximada, no una transacción. El primer error cancela el resto.
// El rol no cambia la forma de la respuesta.
func (uc *DashboardUseCase) GetStats(ctx context.Context, companyID string, _ entity.Role) (*dto.DashboardStatsDTO, error) {
	if companyID == "" {
		return nil, fmt.Errorf("dashboard: empresa vacía")
	}
	var out dto.DashboardStatsDTO
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, what string, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("dashboard: %s: %w", what, err)
			}
			*dst = n
			return nil
		})
	}

	count(&out.TotalOrders, "pedidos", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountOrders(ctx, companyID)
	})
	count(&out.PendingOrders, "pedidos pendientes", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountOrders(ctx, companyID, entity.OrderPending)
	})
	count(&out.CompletedOrders, "pedidos completados", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountOrders(ctx, companyID, entity.OrderCompleted)
	})
	count(&out.TotalProducts, "productos", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountProducts(ctx, companyID)
	})
	count(&out.LowStockProducts, "productos con stock bajo", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountLowStockProducts(ctx, companyID)
	})
	count(&out.TotalVendors, "proveedores", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountVendors(ctx, companyID)
	})
	count(&out.PendingPayments, "pagos pendientes", func(ctx context.Context) (int64, error) {
		return uc.statsRepo.CountPayments(ctx, companyID, entity.PaymentPending)
	})
	g.Go(func() error {
		sum, err := uc.statsRepo.SumPayments(ctx, companyID, entity.PaymentSuccessful)
		if err != nil {
			return fmt.Errorf("dashboard: ingresos: %w", err)
		}
		out.TotalRevenue = sum.Round(2).InexactFloat64()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
