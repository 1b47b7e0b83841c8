package model

import "time"

const (
	AlertTypeLowStock     = "low_stock"
	AlertTypeExpiry       = "expiry"
	AlertTypeOverdueOrder = "overdue_order"
	AlertTypeSystemHealth = "system_health"
	AlertTypeUserActivity = "user_activity"
)

const (
	AlertPriorityCritical = "critical"
	AlertPriorityHigh     = "high"
	AlertPriorityMedium   = "medium"
	AlertPriorityLow      = "low"
)

type Alert struct {
	ID                  string     `db:"id" json:"id"`
	AlertType           string     `db:"alert_type" json:"type"`
	Priority            string     `db:"priority" json:"priority"`
	Title               string     `db:"title" json:"title"`
	Message             string     `db:"message" json:"message"`
	ProductID           *string    `db:"product_id" json:"product_id"`
	Read                bool       `db:"read" json:"read"`
	Acknowledged        bool       `db:"acknowledged" json:"acknowledged"`
	AcknowledgedBy      *string    `db:"acknowledged_by" json:"acknowledged_by"`
	AcknowledgedAt      *time.Time `db:"acknowledged_at" json:"acknowledged_at"`
	AcknowledgmentNotes string     `db:"acknowledgment_notes" json:"acknowledgment_notes"`
	Archived            bool       `db:"archived" json:"archived"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// AlertRule triggers an alert when an observed value crosses its threshold.
type AlertRule struct {
	ID        string    `db:"id" json:"id"`
	AlertType string    `db:"alert_type" json:"type"`
	Priority  string    `db:"priority" json:"priority"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Threshold int       `db:"threshold" json:"threshold"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
