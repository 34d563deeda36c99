package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"invoices-dashboard/models"
	"invoices-dashboard/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ItemsPerPage is the page size of the invoice table.
const ItemsPerPage = 6

// maxPage keeps the page offset well inside int range. Pages past it are empty.
const maxPage = math.MaxInt32 / ItemsPerPage

const latestInvoicesLimit = 5

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern lowercases query and escapes LIKE wildcards so the text
// matches literally as a substring. Pair it with likeEscape in SQL.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

const likeEscape = ` ESCAPE '\'`

type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url" gorm:"column:image_url"`
	Email    string `json:"email"`
	Amount   string `json:"amount"`
}

type CardData struct {
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// InvoiceRow is one line of the invoice table.
type InvoiceRow struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ImageURL   string `json:"image_url" gorm:"column:image_url"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

// InvoiceForm is an invoice prepared for the edit form, amount in dollars.
type InvoiceForm struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
}

// QueryService serves the read side of the dashboard.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

func (s *QueryService) fail(op string, err error) error {
	log.Printf("Database Error: %s: %v", op, err)
	return &DataAccessError{Op: op, Err: err}
}

func (s *QueryService) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	var revenue []models.Revenue
	if err := s.db.WithContext(ctx).Find(&revenue).Error; err != nil {
		return nil, s.fail("fetch revenue data", err)
	}
	return revenue, nil
}

func (s *QueryService) FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error) {
	var rows []struct {
		ID       string
		Name     string
		ImageURL string `gorm:"column:image_url"`
		Email    string
		Amount   int64
	}
	err := s.db.WithContext(ctx).Table("invoices").
		Select("invoices.id, invoices.amount, customers.name, customers.image_url, customers.email").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.date DESC").
		Order("invoices.id ASC").
		Limit(latestInvoicesLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("fetch the latest invoices", err)
	}

	latest := make([]LatestInvoice, 0, len(rows))
	for _, r := range rows {
		latest = append(latest, LatestInvoice{
			ID:       r.ID,
			Name:     r.Name,
			ImageURL: r.ImageURL,
			Email:    r.Email,
			Amount:   utils.FormatCurrency(r.Amount),
		})
	}
	return latest, nil
}

// FetchCardData runs the three summary queries concurrently. The first
// failure cancels the rest.
func (s *QueryService) FetchCardData(ctx context.Context) (*CardData, error) {
	var (
		invoiceCount  int64
		customerCount int64
		totals        []struct {
			Status string
			Total  int64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).Count(&invoiceCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Customer{}).Count(&customerCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).
			Select("status, COALESCE(SUM(amount), 0) AS total").
			Group("status").
			Scan(&totals).Error
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail("fetch card data", err)
	}

	var paid, pending int64
	for _, t := range totals {
		switch t.Status {
		case models.StatusPaid:
			paid = t.Total
		case models.StatusPending:
			pending = t.Total
		}
	}

	return &CardData{
		NumberOfCustomers:    customerCount,
		NumberOfInvoices:     invoiceCount,
		TotalPaidInvoices:    utils.FormatCurrency(paid),
		TotalPendingInvoices: utils.FormatCurrency(pending),
	}, nil
}

// matchInvoices is the search predicate shared by the invoice table and its
// page count. Both must use it or page contents and page totals drift apart.
func matchInvoices(query string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		pattern := likePattern(query)
		cond := "LOWER(customers.name) LIKE ?" + likeEscape + " OR LOWER(customers.email) LIKE ?" + likeEscape +
			" OR invoices.date = ? OR invoices.status = ?"
		args := []interface{}{pattern, pattern, query, query}
		if amount, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64); err == nil {
			cond += " OR invoices.amount = ?"
			args = append(args, amount)
		}
		return db.Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
			Where("("+cond+")", args...)
	}
}

func (s *QueryService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	invoices := []InvoiceRow{}
	if page > maxPage {
		return invoices, nil
	}
	offset := (page - 1) * ItemsPerPage

	err := s.db.WithContext(ctx).Table("invoices").
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status, " +
			"customers.name, customers.email, customers.image_url").
		Scopes(matchInvoices(query)).
		Order("invoices.date DESC").
		Order("invoices.id ASC").
		Limit(ItemsPerPage).
		Offset(offset).
		Scan(&invoices).Error
	if err != nil {
		return nil, s.fail("fetch invoices", err)
	}
	return invoices, nil
}

func (s *QueryService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("invoices").
		Scopes(matchInvoices(query)).
		Count(&count).Error
	if err != nil {
		return 0, s.fail("fetch total number of invoices", err)
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage), nil
}

// FetchInvoiceByID returns nil without an error when no invoice has the id.
func (s *QueryService) FetchInvoiceByID(ctx context.Context, id string) (*InvoiceForm, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Select("id", "customer_id", "amount", "status").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.fail("fetch invoice", err)
	}

	return &InvoiceForm{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     utils.CentsToDollars(invoice.Amount),
		Status:     invoice.Status,
	}, nil
}
