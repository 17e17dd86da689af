package models

import "time"

const LoanTable = "ab_loans"

// Loan records an item being physically out. An open loan is one with
// returned_at IS NULL; the partial unique index created in db.Migrate allows
// at most one open loan per item.
type Loan struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	ReservationID *string    `gorm:"type:uuid;index" json:"reservationId,omitempty"`
	ItemID        string     `gorm:"type:uuid;index;not null" json:"itemId"`
	UserID        string     `gorm:"type:uuid;index;not null" json:"userId"`
	CheckoutAt    time.Time  `gorm:"index;not null" json:"checkoutAt"`
	DueAt         time.Time  `gorm:"not null" json:"dueAt"`
	ReturnedAt    *time.Time `gorm:"index" json:"returnedAt,omitempty"`
	Status        string     `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Loan) TableName() string { return LoanTable }
