package models

import "time"

const UserTable = "ab_users"

// User mirrors the record the external auth service registers. The engine
// never writes users; it reads them for list joins and role checks.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
	Role     string `gorm:"size:16;not null;default:'MEMBER'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }
