package routes

import (
	"github.com/pathanacademy/mining_academy/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:courseId", handlers.GetCourse)
	api.Get("/payment-info", handlers.GetPaymentInfo)
	api.Get("/bundle/quote", handlers.GetBundleQuote)
	api.Post("/suggestions", handlers.CreateSuggestion)
}
