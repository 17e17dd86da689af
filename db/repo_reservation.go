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

// ReservationRow is a reservation joined with the names clients render in
// lists.
type ReservationRow struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	UserID    string    `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	UserFullName string `json:"userFullName"`
	UserEmail    string `json:"userEmail"`
	ItemName     string `json:"itemName"`
	ItemCode     string `json:"itemCode"`
}

type PagedReservations struct {
	Data  []ReservationRow `json:"data"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}

// hasConflictTx runs the inclusive-boundary overlap check inside tx. Callers
// must already hold the item row lock; running this outside the lock and
// inserting afterwards is the exact race this engine exists to prevent.
func hasConflictTx(tx *gorm.DB, itemID string, start, end time.Time, excludeReservationID string) (bool, error) {
	q := tx.Model(&models.Reservation{}).
		Where("item_id = ? AND status IN ?", itemID,
			[]string{booking.ReservationPending, booking.ReservationApproved}).
		Where("end_date >= ? AND start_date <= ?", start, end)
	if excludeReservationID != "" {
		q = q.Where("id <> ?", excludeReservationID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	if err := tx.Model(&models.Loan{}).
		Where("item_id = ? AND returned_at IS NULL", itemID).
		Where("due_at >= ? AND checkout_at <= ?", start, end).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasConflict answers the advisory pre-validation query outside any
// transaction. The authoritative check is the one CreateReservation runs
// under the item lock.
func (r *Repo) HasConflict(ctx context.Context, itemID string, start, end time.Time, excludeReservationID string) (bool, error) {
	blocked, err := hasConflictTx(r.DB.WithContext(ctx), itemID, start, end, excludeReservationID)
	return blocked, translate(err)
}

// CreateReservation inserts a PENDING reservation after an overlap check,
// both inside one transaction serialized per item by the FOR UPDATE lock on
// the item row.
func (r *Repo) CreateReservation(ctx context.Context, itemID, userID string, start, end time.Time) (*models.Reservation, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end: %w", booking.ErrValidation)
	}

	var res *models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %s: %w", itemID, booking.ErrNotFound)
			}
			return err
		}
		if it.Status != models.ItemStatusActive {
			return fmt.Errorf("item %s is %s: %w", it.Code, it.Status, booking.ErrStateConflict)
		}

		blocked, err := hasConflictTx(tx, itemID, start, end, "")
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("item %s already booked in range: %w", it.Code, booking.ErrConflict)
		}

		res = &models.Reservation{
			ID:        uuid.NewString(),
			ItemID:    itemID,
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
			Status:    booking.ReservationPending,
		}
		return tx.Create(res).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// transitionReservation loads the reservation under a row lock, validates the
// transition against the lifecycle table and persists it.
func (r *Repo) transitionReservation(ctx context.Context, id, to string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %s: %w", id, booking.ErrNotFound)
			}
			return err
		}
		if !booking.CanTransitionReservation(res.Status, to) {
			return fmt.Errorf("reservation %s is %s, cannot become %s: %w",
				id, res.Status, to, booking.ErrStateConflict)
		}
		res.Status = to
		return tx.Model(&models.Reservation{}).
			Where("id = ?", id).
			Update("status", to).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *Repo) ApproveReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return r.transitionReservation(ctx, id, booking.ReservationApproved)
}

func (r *Repo) CancelReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return r.transitionReservation(ctx, id, booking.ReservationCancelled)
}

func (r *Repo) reservationListQuery(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table(models.ReservationTable+" res").
		Joins("JOIN "+models.UserTable+" u ON u.id = res.user_id").
		Joins("JOIN "+models.ItemTable+" i ON i.id = res.item_id")

	if f.Status != "" {
		q = q.Where("res.status = ?", f.Status)
	}
	if f.ItemID != "" {
		q = q.Where("res.item_id = ?", f.ItemID)
	}
	if f.UserID != "" {
		q = q.Where("res.user_id = ?", f.UserID)
	}
	// window filter uses the same inclusive overlap rule as the conflict check
	if f.From != nil {
		q = q.Where("res.end_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("res.start_date <= ?", *f.To)
	}
	if f.Q != "" {
		like := likePattern(f.Q)
		q = q.Where(
			"LOWER(u.full_name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(i.name) LIKE ? OR LOWER(i.code) LIKE ?",
			like, like, like, like)
	}
	return q
}

func (r *Repo) ListReservations(ctx context.Context, f ListFilter) (*PagedReservations, error) {
	f.normalize()

	var total int64
	if err := r.reservationListQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var rows []ReservationRow
	if err := r.reservationListQuery(ctx, f).
		Select(`res.id, res.item_id, res.user_id, res.start_date, res.end_date,
			res.status, res.created_at,
			u.full_name AS user_full_name,
			u.email     AS user_email,
			i.name      AS item_name,
			i.code      AS item_code`).
		Order("res.created_at DESC").
		Offset(f.offset()).
		Limit(f.Limit).
		Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	return &PagedReservations{Data: rows, Page: f.Page, Limit: f.Limit, Total: total}, nil
}
