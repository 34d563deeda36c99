package services

import (
	"context"
	"errors"

	"invoices-dashboard/models"
	"invoices-dashboard/utils"

	"gorm.io/gorm"
)

// CustomerField is a customer as offered in selection lists.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CustomerRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

func (s *QueryService) FetchCustomers(ctx context.Context) ([]CustomerField, error) {
	customers := []CustomerField{}
	err := s.db.WithContext(ctx).Model(&models.Customer{}).
		Select("id, name").
		Order("name ASC").
		Scan(&customers).Error
	if err != nil {
		return nil, s.fail("fetch all customers", err)
	}
	return customers, nil
}

func (s *QueryService) FetchFilteredCustomers(ctx context.Context, query string) ([]CustomerRow, error) {
	var rows []struct {
		ID            string
		Name          string
		Email         string
		ImageURL      string `gorm:"column:image_url"`
		TotalInvoices int64
		TotalPending  int64
		TotalPaid     int64
	}

	pattern := likePattern(query)
	err := s.db.WithContext(ctx).Table("customers").
		Select("customers.id, customers.name, customers.email, customers.image_url, " +
			"COUNT(invoices.id) AS total_invoices, " +
			"COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending, " +
			"COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid").
		Joins("LEFT JOIN invoices ON customers.id = invoices.customer_id").
		Where("LOWER(customers.name) LIKE ?"+likeEscape+" OR LOWER(customers.email) LIKE ?"+likeEscape, pattern, pattern).
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("fetch customer table", err)
	}

	customers := make([]CustomerRow, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, CustomerRow{
			ID:            r.ID,
			Name:          r.Name,
			Email:         r.Email,
			ImageURL:      r.ImageURL,
			TotalInvoices: r.TotalInvoices,
			TotalPending:  utils.FormatCurrency(r.TotalPending),
			TotalPaid:     utils.FormatCurrency(r.TotalPaid),
		})
	}
	return customers, nil
}

// GetUser looks a user up by exact email. It returns nil when there is none.
func (s *QueryService) GetUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.fail("fetch user", err)
	}
	return &user, nil
}
