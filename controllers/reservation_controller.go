package controllers

import (
	"fmt"
	"net/http"
	"time"

	"asset_booking/app"
	"asset_booking/booking"

	"github.com/gin-gonic/gin"
)

type ReservationController struct{ *Srv }

func NewReservationController(s *Srv) *ReservationController { return &ReservationController{Srv: s} }

type createReservationReq struct {
	ItemID    string    `json:"itemId" binding:"required"`
	UserID    string    `json:"userId"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// Create inserts a PENDING reservation. Members book for themselves only;
// staff may book on behalf of another member.
func (rc *ReservationController) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var in createReservationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !booking.CanPerform(id, booking.ActionCreateReservation) {
		writeError(c, booking.ErrForbidden)
		return
	}

	targetUser := id.UserID
	if in.UserID != "" && in.UserID != id.UserID {
		if !id.IsStaff() {
			writeError(c, fmt.Errorf("members book for themselves only: %w", booking.ErrForbidden))
			return
		}
		targetUser = in.UserID
	}

	res, err := rc.Reservations.CreateReservation(c.Request.Context(), in.ItemID, targetUser, in.StartDate, in.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	rc.invalidateBlocks(c, res.ItemID)
	c.JSON(http.StatusCreated, res)
}

func (rc *ReservationController) Approve(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionApproveReservation) {
		writeError(c, booking.ErrForbidden)
		return
	}
	res, err := rc.Reservations.ApproveReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	rc.invalidateBlocks(c, res.ItemID)
	c.JSON(http.StatusOK, res)
}

func (rc *ReservationController) Cancel(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionCancelReservation) {
		writeError(c, booking.ErrForbidden)
		return
	}
	res, err := rc.Reservations.CancelReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	rc.invalidateBlocks(c, res.ItemID)
	c.JSON(http.StatusOK, res)
}

// List returns a page of reservations. Member callers are pinned to their
// own records no matter which filters they send.
func (rc *ReservationController) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	page, err := rc.Reservations.ListReservations(c.Request.Context(), listFilter(c, id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
