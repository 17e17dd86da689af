package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"asset_booking/booking"
	"asset_booking/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	if err := r.DB.WithContext(ctx).Create(it).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("item code %s already exists: %w", it.Code, booking.ErrConflict)
		}
		return translate(err)
	}
	return nil
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", id, booking.ErrNotFound)
		}
		return nil, translate(err)
	}
	return &it, nil
}

type PagedItems struct {
	Data  []models.Item `json:"data"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

func (r *Repo) ListItems(ctx context.Context, search string, page, limit int) (*PagedItems, error) {
	f := ListFilter{Page: page, Limit: limit}
	f.normalize()

	tx := r.DB.WithContext(ctx).Model(&models.Item{})
	if s := strings.TrimSpace(search); s != "" {
		like := likePattern(s)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var items []models.Item
	if err := tx.
		Order("created_at DESC").
		Offset(f.offset()).
		Limit(f.Limit).
		Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return &PagedItems{Data: items, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// BlocksInWindow returns every interval blocking the item inside [from,to],
// kind-tagged, ordered by start. Pure read path: no locks, no writes, safe
// to call concurrently; the write path re-validates under the item lock.
func (r *Repo) BlocksInWindow(ctx context.Context, itemID string, from, to time.Time) ([]booking.Block, error) {
	if _, err := r.FindItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	blocks := make([]booking.Block, 0, 8)

	var reservations []models.Reservation
	if err := r.DB.WithContext(ctx).
		Where("item_id = ? AND status IN ?", itemID,
			[]string{booking.ReservationPending, booking.ReservationApproved}).
		Where("end_date >= ? AND start_date <= ?", from, to).
		Find(&reservations).Error; err != nil {
		return nil, translate(err)
	}
	for _, res := range reservations {
		kind := booking.BlockPending
		if res.Status == booking.ReservationApproved {
			kind = booking.BlockApproved
		}
		blocks = append(blocks, booking.Block{Start: res.StartDate, End: res.EndDate, Kind: kind})
	}

	var loans []models.Loan
	if err := r.DB.WithContext(ctx).
		Where("item_id = ? AND returned_at IS NULL", itemID).
		Where("due_at >= ? AND checkout_at <= ?", from, to).
		Find(&loans).Error; err != nil {
		return nil, translate(err)
	}
	for _, l := range loans {
		blocks = append(blocks, booking.Block{Start: l.CheckoutAt, End: l.DueAt, Kind: booking.BlockActiveLoan})
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })
	return blocks, nil
}
