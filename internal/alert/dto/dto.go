package dto

type CreateAlertInput struct {
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	ProductID *string `json:"product_id"`
}

type AlertFilters struct {
	Type     string
	Priority string
	Read     *bool
	Limit    int
}

// RuleData carries the observed values rules are checked against.
type RuleData struct {
	ProductID       *string `json:"product_id"`
	CurrentStock    int     `json:"current_stock"`
	DaysUntilExpiry int     `json:"days_until_expiry"`
	DaysOverdue     int     `json:"days_overdue"`
}
