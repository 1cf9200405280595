package dto

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Los ocho campos están siempre presentes, sea cual sea el rol del llamante.
type DashboardStatsDTO struct {
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	CompletedOrders  int64   `json:"completed_orders"`
	TotalProducts    int64   `json:"total_products"`
	LowStockProducts int64   `json:"low_stock_products"`
	TotalVendors     int64   `json:"total_vendors"`
	PendingPayments  int64   `json:"pending_payments"`
	TotalRevenue     float64 `json:"total_revenue"`
}
