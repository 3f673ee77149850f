package models

// TenantStats are aggregate counts for one tenant.
type TenantStats struct {
	Customers     int     `json:"customers"`
	Products      int     `json:"products"`
	Orders        int     `json:"orders"`
	PendingOrders int     `json:"pending_orders"`
	LowStockItems int     `json:"low_stock_items"`
	Revenue       float64 `json:"revenue"`
}
