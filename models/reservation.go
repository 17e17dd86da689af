package models

import "time"

const ReservationTable = "ab_reservations"

// Reservation holds a requested booking window. Status values and legal
// transitions live in the booking package; rows are never deleted, terminal
// rows (CANCELLED/CONVERTED) simply stop blocking.
type Reservation struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID    string    `gorm:"type:uuid;index;not null" json:"itemId"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"userId"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	Status    string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Reservation) TableName() string { return ReservationTable }
