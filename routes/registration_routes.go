package routes

import (
	"github.com/pathanacademy/mining_academy/handlers"
	"github.com/pathanacademy/mining_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegistrationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	student := api.Group("", middleware.Protected(), middleware.StudentRequired())
	student.Post("/registrations/bundle", handlers.RegisterBundle)
	student.Post("/registrations/:courseId", handlers.CreateRegistration)
	student.Get("/students/me/registrations", handlers.GetMyRegistrations)
	student.Post("/suggestions/me", handlers.CreateStudentSuggestion)
}
