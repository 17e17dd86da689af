package controllers

import (
	"net/http"
	"time"

	"asset_booking/app"
	"asset_booking/booking"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

type checkoutReq struct {
	ReservationID string    `json:"reservationId" binding:"required"`
	DueAt         time.Time `json:"dueAt" binding:"required"`
}

// Checkout converts an APPROVED reservation into an ACTIVE loan.
func (lc *LoanController) Checkout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionCheckoutLoan) {
		writeError(c, booking.ErrForbidden)
		return
	}
	var in checkoutReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loan, err := lc.Loans.CheckoutLoan(c.Request.Context(), in.ReservationID, in.DueAt)
	if err != nil {
		writeError(c, err)
		return
	}
	lc.invalidateBlocks(c, loan.ItemID)
	c.JSON(http.StatusCreated, loan)
}

func (lc *LoanController) Return(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionReturnLoan) {
		writeError(c, booking.ErrForbidden)
		return
	}
	loan, err := lc.Loans.ReturnLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	lc.invalidateBlocks(c, loan.ItemID)
	c.JSON(http.StatusOK, loan)
}

func (lc *LoanController) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	page, err := lc.Loans.ListLoans(c.Request.Context(), listFilter(c, id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
