package routes

import (
	"github.com/pathanacademy/mining_academy/handlers"
	"github.com/pathanacademy/mining_academy/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/registrations", handlers.AdminListRegistrations)
	admin.Post("/registrations/:registrationId/confirm", handlers.ConfirmRegistration)

	courses := admin.Group("/courses")
	courses.Post("", handlers.CreateCourse)
	courses.Put("/:courseId", handlers.UpdateCourse)
	courses.Delete("/:courseId", handlers.DeleteCourse)

	admin.Get("/suggestions", handlers.AdminListSuggestions)
	admin.Get("/stats", handlers.GetAdminStats)

	// Live feed lives outside the /admin group so the JWT middleware does
	// not intercept the upgrade; auth happens over the socket with the
	// first frame.
	api.Use("/events", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/events", websocket.New(handlers.ServeAdminEvents))
}
