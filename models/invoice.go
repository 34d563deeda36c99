package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice amounts are stored in cents. Date is the issue date as YYYY-MM-DD.
type Invoice struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerID string `gorm:"type:varchar(36);index;not null" json:"customer_id"`
	Amount     int64  `gorm:"not null;check:chk_invoices_amount,amount >= 0" json:"amount"`
	Status     string `gorm:"type:varchar(16);not null;index;check:chk_invoices_status,status IN ('pending','paid')" json:"status"`
	Date       string `gorm:"type:varchar(10);not null;index" json:"date"`

	// Deleting the customer removes its invoices.
	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if !ValidStatus(i.Status) {
		return fmt.Errorf("invalid invoice status %q", i.Status)
	}
	return
}

// ValidStatus reports whether s is one of the invoice statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPaid
}
