package kafka

import "time"

// OrderEvent represents an order lifecycle event
type OrderEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	OrderID      uint      `json:"order_id"`
	OwnerID      uint      `json:"owner_id"`
	Status       string    `json:"status"`
	TotalRevenue float64   `json:"total_revenue"`
	OrderDate    time.Time `json:"order_date"`
	Timestamp    time.Time `json:"timestamp"`
}

// ReminderEvent represents an unpaid-order reminder firing
type ReminderEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   uint      `json:"order_id"`
	OwnerID   uint      `json:"owner_id"`
	OrderDate time.Time `json:"order_date"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderUpdated       = "order.updated"
	EventTypeOrderDeleted       = "order.deleted"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeUnpaidReminder     = "order.unpaid_reminder"
)

// Kafka topics
const (
	TopicOrderEvents    = "order-events"
	TopicOrderReminders = "order-reminders"
)
