package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Revenue struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Month   string `gorm:"not null" json:"month"`
	Revenue int64  `gorm:"not null" json:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}

func (r *Revenue) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return
}
