package db

import (
	"asset_booking/booking"
	"asset_booking/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// ListFilter is the shared query surface for reservation and loan listings.
// UserID must already be scoped by the caller (booking.ScopedUserID); the
// repo applies it verbatim.
type ListFilter struct {
	Status string
	ItemID string
	UserID string
	From   *time.Time
	To     *time.Time
	Q      string
	Page   int
	Limit  int
}

func (f *ListFilter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

func (f ListFilter) offset() int { return (f.Page - 1) * f.Limit }

// translate maps storage errors onto the booking taxonomy. A transaction
// that died because the request deadline expired while waiting on a row lock
// is retryable, not a data error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return booking.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return booking.ErrConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("storage timed out: %w", booking.ErrBusy)
	default:
		return err
	}
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// Users

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, translate(err)
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, translate(err)
	}
	return ListUsersResult{Users: users, Total: total}, nil
}
