package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"invoices-dashboard/models"
	"invoices-dashboard/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// InvoicesPage is where the dashboard lands after a successful create or update.
const InvoicesPage = "/dashboard/invoices"

// Cached API views that read invoices.
const (
	InvoicesView  = "/api/invoices"
	DashboardView = "/api/dashboard"
	CustomersView = "/api/customers"
)

const pgForeignKeyViolation = "23503"

// Revalidator marks a cached view stale so the next read reflects a change.
type Revalidator interface {
	Revalidate(path string)
}

// InvoiceInput is the invoice form as submitted. Amount is in dollars.
type InvoiceInput struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required" msg:"Please select a customer."`
	Amount     string `form:"amount" json:"amount" validate:"required,money" msg:"Please enter a valid amount."`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid" msg:"Please select an invoice status."`
}

// ActionResult is what a mutation hands back to the form. Err is set when the
// store rejected the write; Message then holds the text to show.
type ActionResult struct {
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Err      error  `json:"-"`
}

func (r *ActionResult) Failed() bool {
	return r.Err != nil
}

// ActionService validates and persists invoice changes.
type ActionService struct {
	db     *gorm.DB
	views  Revalidator
	events EventPublisher
	now    func() time.Time
}

// NewActionService builds the mutation side. events may be nil.
func NewActionService(db *gorm.DB, views Revalidator, events EventPublisher) *ActionService {
	return &ActionService{
		db:     db,
		views:  views,
		events: events,
		now:    time.Now,
	}
}

func (s *ActionService) CreateInvoice(ctx context.Context, input InvoiceInput) (*ActionResult, error) {
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	cents, err := parseInvoiceInput(input, "Missing Fields. Failed to Create Invoice.")
	if err != nil {
		return nil, err
	}

	invoice := models.Invoice{
		CustomerID: input.CustomerID,
		Amount:     cents,
		Status:     input.Status,
		Date:       utils.DateString(s.now()),
	}
	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return storeFailure("Create", err), nil
	}

	s.afterMutation(ctx, models.InvoiceEvent{
		Type:       models.InvoiceCreated,
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     invoice.Amount,
		Status:     invoice.Status,
	})
	return &ActionResult{Redirect: InvoicesPage}, nil
}

// UpdateInvoice rewrites customer, amount and status. The issue date is kept.
func (s *ActionService) UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*ActionResult, error) {
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	cents, err := parseInvoiceInput(input, "Missing Fields. Failed to Update Invoice.")
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": input.CustomerID,
			"amount":      cents,
			"status":      input.Status,
		})
	if result.Error != nil {
		return storeFailure("Update", result.Error), nil
	}
	if result.RowsAffected == 0 {
		return storeFailure("Update", gorm.ErrRecordNotFound), nil
	}

	s.afterMutation(ctx, models.InvoiceEvent{
		Type:       models.InvoiceUpdated,
		InvoiceID:  id,
		CustomerID: input.CustomerID,
		Amount:     cents,
		Status:     input.Status,
	})
	return &ActionResult{Redirect: InvoicesPage}, nil
}

// DeleteInvoice removes the invoice in place. Unknown ids are not an error.
func (s *ActionService) DeleteInvoice(ctx context.Context, id string) *ActionResult {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if result.Error != nil {
		return storeFailure("Delete", result.Error)
	}

	if result.RowsAffected > 0 {
		s.afterMutation(ctx, models.InvoiceEvent{
			Type:      models.InvoiceDeleted,
			InvoiceID: id,
		})
	} else {
		s.revalidate()
	}
	return &ActionResult{Message: "Deleted Invoice."}
}

func (s *ActionService) revalidate() {
	if s.views == nil {
		return
	}
	for _, path := range []string{InvoicesView, DashboardView, CustomersView} {
		s.views.Revalidate(path)
	}
}

func (s *ActionService) afterMutation(ctx context.Context, event models.InvoiceEvent) {
	s.revalidate()

	if s.events == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s for invoice %s: %v", event.Type, event.InvoiceID, err)
	}
}

func parseInvoiceInput(input InvoiceInput, message string) (int64, error) {
	fields, err := utils.ValidateStruct(input)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, &ValidationError{Message: message, Errors: fields}
	}

	cents, err := utils.DollarsToCents(input.Amount)
	if err != nil {
		return 0, &ValidationError{
			Message: message,
			Errors:  map[string][]string{"amount": {"Please enter a valid amount."}},
		}
	}
	return cents, nil
}

func storeFailure(action string, err error) *ActionResult {
	log.Printf("Database Error: failed to %s invoice: %v", strings.ToLower(action), err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &ActionResult{Message: "Database Error: Customer does not exist.", Err: err}
	}
	return &ActionResult{Message: "Database Error: Failed to " + action + " Invoice.", Err: err}
}
