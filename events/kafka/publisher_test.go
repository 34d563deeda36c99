package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"invoices-dashboard/models"
)

func TestMessageKeysByInvoice(t *testing.T) {
	event := models.InvoiceEvent{
		Type:       models.InvoiceUpdated,
		InvoiceID:  "inv-1",
		CustomerID: "cust-1",
		Amount:     1250,
		Status:     models.StatusPaid,
		OccurredAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}

	msg, err := message(event)
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if string(msg.Key) != "inv-1" {
		t.Errorf("key = %q, want inv-1", msg.Key)
	}
	if len(msg.Headers) != 1 || msg.Headers[0].Key != "type" || string(msg.Headers[0].Value) != models.InvoiceUpdated {
		t.Errorf("headers = %+v", msg.Headers)
	}

	var decoded models.InvoiceEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("value is not JSON: %v", err)
	}
	if !decoded.OccurredAt.Equal(event.OccurredAt) {
		t.Errorf("occurred_at = %v, want %v", decoded.OccurredAt, event.OccurredAt)
	}
	decoded.OccurredAt = event.OccurredAt
	if decoded != event {
		t.Errorf("decoded = %+v, want %+v", decoded, event)
	}

	var raw map[string]any
	_ = json.Unmarshal(msg.Value, &raw)
	for _, field := range []string{"type", "invoice_id", "customer_id", "amount", "status", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("value missing %q: %s", field, msg.Value)
		}
	}
}

func TestMessageForDeleteOmitsEmptyFields(t *testing.T) {
	msg, err := message(models.InvoiceEvent{Type: models.InvoiceDeleted, InvoiceID: "inv-2"})
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(msg.Value, &raw)
	if _, ok := raw["customer_id"]; ok {
		t.Errorf("delete event carries customer_id: %s", msg.Value)
	}
	if string(msg.Key) != "inv-2" {
		t.Errorf("key = %q", msg.Key)
	}
}
