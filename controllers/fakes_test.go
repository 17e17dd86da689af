package controllers

import (
	"context"
	"errors"
	"time"

	"asset_booking/app"
	"asset_booking/booking"
	"asset_booking/db"
	"asset_booking/models"

	"github.com/gin-gonic/gin"
)

var errUnexpectedCall = errors.New("unexpected store call")

type stubReservations struct {
	create  func(itemID, userID string, start, end time.Time) (*models.Reservation, error)
	approve func(id string) (*models.Reservation, error)
	cancel  func(id string) (*models.Reservation, error)
	list    func(f db.ListFilter) (*db.PagedReservations, error)
}

func (s *stubReservations) CreateReservation(_ context.Context, itemID, userID string, start, end time.Time) (*models.Reservation, error) {
	if s.create == nil {
		return nil, errUnexpectedCall
	}
	return s.create(itemID, userID, start, end)
}

func (s *stubReservations) ApproveReservation(_ context.Context, id string) (*models.Reservation, error) {
	if s.approve == nil {
		return nil, errUnexpectedCall
	}
	return s.approve(id)
}

func (s *stubReservations) CancelReservation(_ context.Context, id string) (*models.Reservation, error) {
	if s.cancel == nil {
		return nil, errUnexpectedCall
	}
	return s.cancel(id)
}

func (s *stubReservations) ListReservations(_ context.Context, f db.ListFilter) (*db.PagedReservations, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(f)
}

type stubLoans struct {
	checkout func(reservationID string, dueAt time.Time) (*models.Loan, error)
	ret      func(id string) (*models.Loan, error)
	list     func(f db.ListFilter) (*db.PagedLoans, error)
}

func (s *stubLoans) CheckoutLoan(_ context.Context, reservationID string, dueAt time.Time) (*models.Loan, error) {
	if s.checkout == nil {
		return nil, errUnexpectedCall
	}
	return s.checkout(reservationID, dueAt)
}

func (s *stubLoans) ReturnLoan(_ context.Context, id string) (*models.Loan, error) {
	if s.ret == nil {
		return nil, errUnexpectedCall
	}
	return s.ret(id)
}

func (s *stubLoans) ListLoans(_ context.Context, f db.ListFilter) (*db.PagedLoans, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(f)
}

type stubItems struct {
	create func(it *models.Item) error
	find   func(id string) (*models.Item, error)
	list   func(search string, page, limit int) (*db.PagedItems, error)
	blocks func(itemID string, from, to time.Time) ([]booking.Block, error)
}

func (s *stubItems) CreateItem(_ context.Context, it *models.Item) error {
	if s.create == nil {
		return errUnexpectedCall
	}
	return s.create(it)
}

func (s *stubItems) FindItemByID(_ context.Context, id string) (*models.Item, error) {
	if s.find == nil {
		return nil, errUnexpectedCall
	}
	return s.find(id)
}

func (s *stubItems) ListItems(_ context.Context, search string, page, limit int) (*db.PagedItems, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(search, page, limit)
}

func (s *stubItems) BlocksInWindow(_ context.Context, itemID string, from, to time.Time) ([]booking.Block, error) {
	if s.blocks == nil {
		return nil, errUnexpectedCall
	}
	return s.blocks(itemID, from, to)
}

type stubCache struct {
	hits        map[string][]booking.Block
	invalidated []string
	puts        int
}

func (c *stubCache) Get(_ context.Context, itemID string, _, _ time.Time) ([]booking.Block, bool) {
	b, ok := c.hits[itemID]
	return b, ok
}

func (c *stubCache) Put(_ context.Context, _ string, _, _ time.Time, _ []booking.Block) {
	c.puts++
}

func (c *stubCache) Invalidate(_ context.Context, itemID string) {
	c.invalidated = append(c.invalidated, itemID)
}

// testRouter wires the controllers against stubs, with the given identity
// injected the way AuthRequired would.
func testRouter(s *Srv, id booking.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id.UserID != "" {
			app.SetIdentity(c, id)
		}
		c.Next()
	})

	rc := NewReservationController(s)
	lc := NewLoanController(s)
	ic := NewItemController(s)

	api := r.Group("/api")
	api.POST("/reservations", rc.Create)
	api.GET("/reservations", rc.List)
	api.PATCH("/reservations/:id/approve", rc.Approve)
	api.PATCH("/reservations/:id/cancel", rc.Cancel)
	api.POST("/loans", lc.Checkout)
	api.GET("/loans", lc.List)
	api.PATCH("/loans/:id/return", lc.Return)
	api.GET("/items/:id/availability", ic.Availability)
	api.POST("/items", ic.Create)
	return r
}
