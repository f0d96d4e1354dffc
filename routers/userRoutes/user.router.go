package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userControllers "lms/controllers/user"
	"lms/middleware"
	userValidator "lms/validators/user"
)

// SetupUserRoutes sets up admin user management plus self-service settings
func SetupUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/users")

	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.AdminOnly, userValidator.ListUsers(), userControllers.AdminListUsers)
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, userValidator.CreateUser(), userControllers.AdminCreateUser)
	adminGroup.Get("/:id", middleware.JWTMiddleware, middleware.AdminOnly, userValidator.UserID(), userControllers.AdminGetUser)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, userValidator.UpdateUser(), userControllers.AdminUpdateUser)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, userValidator.UserID(), userControllers.AdminDeleteUser)

	// Per-user preferences, any authenticated caller
	selfGroup := app.Group("/user/settings")
	selfGroup.Get("/", middleware.JWTMiddleware, userControllers.GetUserSettings)
	selfGroup.Put("/", middleware.JWTMiddleware, userValidator.PutUserSetting(), userControllers.PutUserSetting)
}
