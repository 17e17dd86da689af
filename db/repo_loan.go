package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset_booking/booking"
	"asset_booking/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRow struct {
	ID            string     `json:"id"`
	ReservationID *string    `json:"reservationId,omitempty"`
	ItemID        string     `json:"itemId"`
	UserID        string     `json:"userId"`
	CheckoutAt    time.Time  `json:"checkoutAt"`
	DueAt         time.Time  `json:"dueAt"`
	ReturnedAt    *time.Time `json:"returnedAt,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`

	UserFullName string `json:"userFullName"`
	UserEmail    string `json:"userEmail"`
	ItemName     string `json:"itemName"`
	ItemCode     string `json:"itemCode"`
}

type PagedLoans struct {
	Data  []LoanRow `json:"data"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// CheckoutLoan converts an APPROVED reservation into an ACTIVE loan. One
// transaction: lock the reservation, lock its item (per-item serialization,
// same order everywhere: reservation/loan first, item second), then write the
// loan, the CONVERTED status and the available flag together.
func (r *Repo) CheckoutLoan(ctx context.Context, reservationID string, dueAt time.Time) (*models.Loan, error) {
	// A bad due date is a conflict with the reservation being converted, not
	// a malformed request, so it reports as a state conflict like a wrong
	// reservation status does.
	now := time.Now().UTC()
	if !dueAt.After(now) {
		return nil, fmt.Errorf("due date must be in the future: %w", booking.ErrStateConflict)
	}

	var loan *models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, "id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %s: %w", reservationID, booking.ErrNotFound)
			}
			return err
		}

		var it models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", res.ItemID).Error; err != nil {
			return err
		}

		if res.Status != booking.ReservationApproved {
			return fmt.Errorf("reservation %s is %s, not APPROVED: %w",
				reservationID, res.Status, booking.ErrStateConflict)
		}
		if !dueAt.After(res.EndDate) {
			return fmt.Errorf("due date must fall after the reserved window: %w", booking.ErrStateConflict)
		}

		l := &models.Loan{
			ID:            uuid.NewString(),
			ReservationID: &res.ID,
			ItemID:        res.ItemID,
			UserID:        res.UserID,
			CheckoutAt:    now,
			DueAt:         dueAt,
			Status:        booking.LoanActive,
		}
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", res.ID).
			Update("status", booking.ReservationConverted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Item{}).
			Where("id = ?", res.ItemID).
			Update("available", false).Error; err != nil {
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return loan, nil
}

// ReturnLoan closes an open loan and releases the item, atomically. Already
// returned loans fail with a state conflict rather than succeeding silently.
func (r *Repo) ReturnLoan(ctx context.Context, id string) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("loan %s: %w", id, booking.ErrNotFound)
			}
			return err
		}
		if !booking.LoanOpen(l.ReturnedAt) {
			return fmt.Errorf("loan %s already returned: %w", id, booking.ErrStateConflict)
		}

		now := time.Now().UTC()
		l.ReturnedAt = &now
		l.Status = booking.LoanReturned
		if err := tx.Model(&models.Loan{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":      booking.LoanReturned,
				"returned_at": now,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Item{}).
			Where("id = ?", l.ItemID).
			Update("available", true).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *Repo) loanListQuery(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Joins("JOIN "+models.UserTable+" u ON u.id = l.user_id").
		Joins("JOIN "+models.ItemTable+" i ON i.id = l.item_id")

	// Status filters follow derived truth, not the possibly stale stored
	// column, so "OVERDUE" is accurate even between sweep runs.
	switch f.Status {
	case booking.LoanActive:
		q = q.Where("l.returned_at IS NULL AND l.due_at >= NOW()")
	case booking.LoanOverdue:
		q = q.Where("l.returned_at IS NULL AND l.due_at < NOW()")
	case booking.LoanReturned:
		q = q.Where("l.returned_at IS NOT NULL")
	}
	if f.ItemID != "" {
		q = q.Where("l.item_id = ?", f.ItemID)
	}
	if f.UserID != "" {
		q = q.Where("l.user_id = ?", f.UserID)
	}
	if f.From != nil {
		q = q.Where("l.due_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("l.checkout_at <= ?", *f.To)
	}
	if f.Q != "" {
		like := likePattern(f.Q)
		q = q.Where(
			"LOWER(u.full_name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(i.name) LIKE ? OR LOWER(i.code) LIKE ?",
			like, like, like, like)
	}
	return q
}

func (r *Repo) ListLoans(ctx context.Context, f ListFilter) (*PagedLoans, error) {
	f.normalize()

	var total int64
	if err := r.loanListQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var rows []LoanRow
	if err := r.loanListQuery(ctx, f).
		Select(`l.id, l.reservation_id, l.item_id, l.user_id, l.checkout_at,
			l.due_at, l.returned_at, l.status, l.created_at,
			u.full_name AS user_full_name,
			u.email     AS user_email,
			i.name      AS item_name,
			i.code      AS item_code`).
		Order("l.checkout_at DESC").
		Offset(f.offset()).
		Limit(f.Limit).
		Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	// derive on read, regardless of what the sweep has persisted so far
	now := time.Now().UTC()
	for i := range rows {
		rows[i].Status = booking.EffectiveLoanStatus(rows[i].Status, rows[i].DueAt, rows[i].ReturnedAt, now)
	}

	return &PagedLoans{Data: rows, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// MarkOverdueLoans persists the derived OVERDUE status for stored-ACTIVE
// loans past due. Idempotent; run periodically by workers.OverdueSweeper so
// stored-status dashboards stay accurate.
func (r *Repo) MarkOverdueLoans(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ? AND returned_at IS NULL AND due_at < NOW()", booking.LoanActive).
		Update("status", booking.LoanOverdue)
	return res.RowsAffected, translate(res.Error)
}
