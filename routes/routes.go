package routes

import (
	"asset_booking/app"
	"asset_booking/controllers"
	"asset_booking/db"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	rc := controllers.NewReservationController(s)
	lc := controllers.NewLoanController(s)
	ic := controllers.NewItemController(s)
	uc := controllers.NewUserController(s)

	authMW := app.AuthRequired(a.AppSessions(), db.NewRepo(a.DB))

	api := r.Group("/api", authMW)

	// ------------------------------
	// Items（资产登记边界）
	// ------------------------------
	items := api.Group("/items")
	{
		items.GET("", ic.List)                      // ?search=&page=&limit=
		items.GET("/:id", ic.Get)                   // 精确查单个
		items.GET("/:id/availability", ic.Availability) // ?from=&to= (RFC3339)
		items.POST("", ic.Create)                   // staff/admin
	}

	// ------------------------------
	// Reservations
	// ------------------------------
	reservations := api.Group("/reservations")
	{
		reservations.POST("", rc.Create)
		reservations.GET("", rc.List) // ?status=&itemId=&userId=&from=&to=&q=&page=&limit=
		reservations.PATCH("/:id/approve", rc.Approve)
		reservations.PATCH("/:id/cancel", rc.Cancel)
	}

	// ------------------------------
	// Loans
	// ------------------------------
	loans := api.Group("/loans")
	{
		loans.POST("", lc.Checkout)
		loans.GET("", lc.List)
		loans.PATCH("/:id/return", lc.Return)
	}

	// ------------------------------
	// Users（staff 视图）
	// ------------------------------
	users := api.Group("/users")
	{
		users.GET("", uc.ListUsers) // ?q=&page=&size=
		users.GET("/:id", uc.GetUser)
	}
}
