package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-portal-api/internal/application/analytics"
	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

type tenantData struct {
	orders   []entity.OrderStatus
	products []entity.Product
	vendors  int64
	payments []entity.Payment
}

type fakeStats struct {
	data map[string]tenantData
	fail error
}

func (f *fakeStats) CountOrders(_ context.Context, companyID string, statuses ...entity.OrderStatus) (int64, error) {
	var n int64
	for _, s := range f.data[companyID].orders {
		if len(statuses) == 0 {
			n++
			continue
		}
		for _, want := range statuses {
			if s == want {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeStats) CountProducts(_ context.Context, companyID string) (int64, error) {
	return int64(len(f.data[companyID].products)), nil
}

func (f *fakeStats) CountLowStockProducts(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, p := range f.data[companyID].products {
		if p.LowStock() {
			n++
		}
	}
	return n, nil
}

func (f *fakeStats) CountVendors(_ context.Context, companyID string) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	return f.data[companyID].vendors, nil
}

func (f *fakeStats) CountPayments(_ context.Context, companyID string, status entity.PaymentStatus) (int64, error) {
	var n int64
	for _, p := range f.data[companyID].payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeStats) SumPayments(_ context.Context, companyID string, status entity.PaymentStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.data[companyID].payments {
		if p.Status == status {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func payment(status entity.PaymentStatus, amount string) entity.Payment {
	return entity.Payment{Status: status, Amount: decimal.RequireFromString(amount)}
}

func newStats() *fakeStats {
	return &fakeStats{data: map[string]tenantData{
		"acme": {
			orders: []entity.OrderStatus{entity.OrderPending, entity.OrderPending, entity.OrderCompleted, entity.OrderCancelled},
			products: []entity.Product{
				{StockQuantity: 2, ReorderThreshold: 5},
				{StockQuantity: 5, ReorderThreshold: 5},
				{StockQuantity: 10, ReorderThreshold: 5},
			},
			vendors: 3,
			payments: []entity.Payment{
				payment(entity.PaymentSuccessful, "100.10"),
				payment(entity.PaymentSuccessful, "49.905"),
				payment(entity.PaymentPending, "500"),
				payment(entity.PaymentFailed, "75"),
			},
		},
		"globex": {
			orders:  []entity.OrderStatus{entity.OrderCompleted},
			vendors: 9,
		},
	}}
}

func TestGetStats_Acme(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newStats())

	got, err := uc.GetStats(context.Background(), "acme", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStatsDTO{
		TotalOrders:      4,
		PendingOrders:    2,
		CompletedOrders:  1,
		TotalProducts:    3,
		LowStockProducts: 1,
		TotalVendors:     3,
		PendingPayments:  1,
		TotalRevenue:     150.01,
	}, *got)
}

func TestGetStats_MismaFormaParaTodosLosRoles(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newStats())

	admin, err := uc.GetStats(context.Background(), "acme", entity.RoleAdmin)
	require.NoError(t, err)
	for _, role := range []entity.Role{entity.RoleSales, entity.RoleBuyer} {
		got, err := uc.GetStats(context.Background(), "acme", role)
		require.NoError(t, err)
		assert.Equal(t, admin, got, role)
	}
}

func TestGetStats_AisladoPorEmpresa(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newStats())

	got, err := uc.GetStats(context.Background(), "globex", entity.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalOrders)
	assert.Equal(t, int64(9), got.TotalVendors)
	assert.Zero(t, got.TotalRevenue)

	empty, err := uc.GetStats(context.Background(), "sin-datos", entity.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStatsDTO{}, *empty)
}

func TestGetStats_ErrorDeAlmacenamiento(t *testing.T) {
	stats := newStats()
	stats.fail = errors.New("timeout")
	uc := analytics.NewDashboardUseCase(stats)

	_, err := uc.GetStats(context.Background(), "acme", entity.RoleAdmin)
	assert.ErrorIs(t, err, stats.fail)
}
