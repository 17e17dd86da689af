package controllers

import (
	"net/http"
	"strconv"
	"time"

	"asset_booking/app"
	"asset_booking/booking"
	"asset_booking/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

type createItemReq struct {
	Name          string `json:"name" binding:"required,min=2"`
	Code          string `json:"code" binding:"required,min=2"`
	Category      string `json:"category" binding:"required,min=2"`
	ConditionNote string `json:"conditionNote"`
}

func (ic *ItemController) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if !booking.CanPerform(id, booking.ActionManageItems) {
		writeError(c, booking.ErrForbidden)
		return
	}
	var in createItemReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	it := &models.Item{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Code:          in.Code,
		Category:      in.Category,
		ConditionNote: in.ConditionNote,
		Available:     true,
		Status:        models.ItemStatusActive,
	}
	if err := ic.Items.CreateItem(c.Request.Context(), it); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (ic *ItemController) List(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	res, err := ic.Items.ListItems(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ic *ItemController) Get(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	it, err := ic.Items.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Availability returns the blocking intervals for an item in [from,to].
// Advisory read path: cached briefly, never a substitute for the conflict
// check the write path runs.
func (ic *ItemController) Availability(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	itemID := c.Param("id")

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "from must be RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "to must be RFC3339"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, app.H{"error": "to must not precede from"})
		return
	}

	if ic.Blocks != nil {
		if blocks, hit := ic.Blocks.Get(c.Request.Context(), itemID, from, to); hit {
			c.JSON(http.StatusOK, app.H{"itemId": itemID, "from": from, "to": to, "blocks": blocks})
			return
		}
	}

	blocks, err := ic.Items.BlocksInWindow(c.Request.Context(), itemID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	if ic.Blocks != nil {
		ic.Blocks.Put(c.Request.Context(), itemID, from, to, blocks)
	}
	c.JSON(http.StatusOK, app.H{"itemId": itemID, "from": from, "to": to, "blocks": blocks})
}
