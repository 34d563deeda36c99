package models

import "time"

const (
	InvoiceCreated = "invoice.created"
	InvoiceUpdated = "invoice.updated"
	InvoiceDeleted = "invoice.deleted"
)

// InvoiceEvent is published after an invoice mutation has been persisted.
type InvoiceEvent struct {
	Type       string    `json:"type"`
	InvoiceID  string    `json:"invoice_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
