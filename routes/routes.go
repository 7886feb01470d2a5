package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/controllers"
	"github.com/teamvolt/binex/controllers/admin_controllers"
	"github.com/teamvolt/binex/routes/middlewares"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)

	api := app.Group("/api/v2", middlewares.Authenticate)

	api.Get("/members/me", controllers.GetMember)
	api.Post("/members", controllers.CreateMember)
	api.Post("/purchases", controllers.CreatePurchase)
	api.Get("/tree", controllers.GetTree)
	api.Get("/tree/:uid", controllers.GetTreeByUID)
	api.Get("/wallet", controllers.GetWallet)
	api.Get("/incomes", controllers.GetIncomes)
	api.Get("/rank", controllers.GetRank)

	admin := api.Group("/admin", middlewares.AdminVaildator)

	admin.Get("/config", admin_controllers.GetConfig)
	admin.Put("/config", admin_controllers.UpdateConfig)
	admin.Post("/members/:uid/rank", admin_controllers.AssignRank)
	admin.Get("/incomes", admin_controllers.GetIncomes)
	admin.Post("/incomes/:uuid/cancel", admin_controllers.CancelIncome)

	return app
}
