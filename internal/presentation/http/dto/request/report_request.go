package request

// ReportQuery represents order report query parameters
type ReportQuery struct {
	Period    string `form:"period"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Status    string `form:"status"`
	Search    string `form:"search" binding:"max=100"`
	Refresh   bool   `form:"refresh"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ExportQuery represents order report export parameters
type ExportQuery struct {
	ReportQuery
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx CSV XLSX"`
}

// UpdateOrderStatusRequest represents an order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSettingsRequest represents a report preferences update
type UpdateSettingsRequest struct {
	Timezone            string `json:"timezone" binding:"omitempty,max=50"`
	DefaultReportPeriod string `json:"default_report_period" binding:"omitempty,max=20"`
}
