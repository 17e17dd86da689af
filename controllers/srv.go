// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"asset_booking/app"
	"asset_booking/booking"
	"asset_booking/cache"
	"asset_booking/db"
	"asset_booking/models"

	"github.com/gin-gonic/gin"
)

// Store interfaces let handlers be exercised with fakes; *db.Repo satisfies
// all of them.

type ReservationStore interface {
	CreateReservation(ctx context.Context, itemID, userID string, start, end time.Time) (*models.Reservation, error)
	ApproveReservation(ctx context.Context, id string) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, f db.ListFilter) (*db.PagedReservations, error)
}

type LoanStore interface {
	CheckoutLoan(ctx context.Context, reservationID string, dueAt time.Time) (*models.Loan, error)
	ReturnLoan(ctx context.Context, id string) (*models.Loan, error)
	ListLoans(ctx context.Context, f db.ListFilter) (*db.PagedLoans, error)
}

type ItemStore interface {
	CreateItem(ctx context.Context, it *models.Item) error
	FindItemByID(ctx context.Context, id string) (*models.Item, error)
	ListItems(ctx context.Context, search string, page, limit int) (*db.PagedItems, error)
	BlocksInWindow(ctx context.Context, itemID string, from, to time.Time) ([]booking.Block, error)
}

type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, q string, page, size int) (db.ListUsersResult, error)
}

// BlockCache is the advisory availability cache; a nil cache disables it.
type BlockCache interface {
	Get(ctx context.Context, itemID string, from, to time.Time) ([]booking.Block, bool)
	Put(ctx context.Context, itemID string, from, to time.Time, blocks []booking.Block)
	Invalidate(ctx context.Context, itemID string)
}

type Srv struct {
	Reservations ReservationStore
	Loans        LoanStore
	Items        ItemStore
	Users        UserStore
	Blocks       BlockCache
	Cfg          app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Reservations: repo,
		Loans:        repo,
		Items:        repo,
		Users:        repo,
		Blocks:       cache.NewAvailabilityCache(a.RDB, a.Config.AvailCacheTTL),
		Cfg:          a.Config,
	}
}

// invalidateBlocks drops cached availability for an item after a write.
func (s *Srv) invalidateBlocks(c *gin.Context, itemID string) {
	if s.Blocks != nil && itemID != "" {
		s.Blocks.Invalidate(c.Request.Context(), itemID)
	}
}

// writeError is the single mapping from the booking taxonomy to HTTP.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, booking.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrConflict), errors.Is(err, booking.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrBusy):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, app.H{"error": err.Error()})
}

func identity(c *gin.Context) (booking.Identity, bool) {
	id, ok := app.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
	}
	return id, ok
}

// listFilter parses the shared query surface; UserID is scoped to the caller
// before it reaches the repo.
func listFilter(c *gin.Context, id booking.Identity) db.ListFilter {
	f := db.ListFilter{
		Status: c.Query("status"),
		ItemID: c.Query("itemId"),
		UserID: booking.ScopedUserID(id, c.Query("userId")),
		Q:      c.Query("q"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if t, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		f.From = &t
	}
	if t, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		f.To = &t
	}
	return f
}
