package controllers

import (
	"net/http"
	"strconv"

	"asset_booking/booking"

	"github.com/gin-gonic/gin"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// ListUsers backs the staff screens (picking a borrower, filtering lists).
func (uc *UserController) ListUsers(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionListUsers) {
		writeError(c, booking.ErrForbidden)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	res, err := uc.Users.ListUsers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetUser returns a single user: self always, anyone for staff.
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	target := c.Param("id")
	if target != id.UserID && !id.IsStaff() {
		writeError(c, booking.ErrForbidden)
		return
	}
	u, err := uc.Users.FindUserByID(c.Request.Context(), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
