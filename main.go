package main

import (
	"asset_booking/app"
	"asset_booking/config"
	"asset_booking/db"
	"asset_booking/routes"
	"asset_booking/workers"
	"context"
	"log"
	"os"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := workers.NewOverdueSweeper(db.NewRepo(application.DB), application.Config.SweepInterval)
	sweeper.Start(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
