package models

import "time"

const ItemTable = "ab_items"

const (
	ItemStatusActive  = "active"
	ItemStatusRetired = "retired"
)

// Item is one unique physical asset.
//
// Available is a cached signal written only by the loan lifecycle (false on
// checkout, true on return). It is not authoritative: the open-loan query is.
// Status is the independently managed attribute (retired items cannot be
// booked regardless of Available).
type Item struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string `gorm:"size:120;uniqueIndex;not null" json:"code"`
	Name          string `gorm:"size:200;not null" json:"name"`
	Category      string `gorm:"size:120" json:"category"`
	ConditionNote string `gorm:"size:255" json:"conditionNote,omitempty"`
	Available     bool   `gorm:"not null;default:true" json:"available"`
	Status        string `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }
