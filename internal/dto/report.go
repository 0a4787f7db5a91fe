package dto

import "github.com/shopspring/decimal"

// SalesReportResponse lists SALE transactions in a date range with the total
// revenue folded from them.
type SalesReportResponse struct {
	Sales        []TransactionResponse `json:"sales"`
	TotalRevenue decimal.Decimal       `json:"totalRevenue"`
}

// BatchReportResponse summarizes one batch by replaying its transaction log.
type BatchReportResponse struct {
	Sales         []TransactionResponse `json:"sales"`
	BuyBacks      []TransactionResponse `json:"buyBacks"`
	TotalSold     decimal.Decimal       `json:"totalSold"`
	TotalBought   decimal.Decimal       `json:"totalBought"`
	TotalChickens int64                 `json:"totalChickens"`
}

// DashboardResponse carries the landing-page stats.
type DashboardResponse struct {
	SalesToday               decimal.Decimal       `json:"salesToday"`
	NegativeBalanceCustomers int64                 `json:"negativeBalanceCustomers"`
	LowStockProducts         int64                 `json:"lowStockProducts"`
	RecentTransactions       []TransactionResponse `json:"recentTransactions"`
}
