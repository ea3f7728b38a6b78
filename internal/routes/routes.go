package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/handlers"
	"github.com/example/donorfinder/internal/middleware"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)
	donorHandler := handlers.NewDonorHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(db)
	feedbackHandler := handlers.NewFeedbackHandler(db)
	commentHandler := handlers.NewCommentHandler(db)

	userGuard := middleware.AuthMiddleware(cfg, config.RealmUser)
	adminGuard := middleware.AuthMiddleware(cfg, config.RealmAdmin)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	users := api.Group("/users")
	users.Post("/search", donorHandler.Search)
	users.Post("/report-donor", reportHandler.Submit)
	users.Get("/me", userGuard, profileHandler.Me)
	users.Put("/profile", userGuard, profileHandler.UpdateProfile)

	api.Get("/donors", donorHandler.ListAvailable)

	comments := api.Group("/comments")
	comments.Get("/", commentHandler.List)
	comments.Post("/", commentHandler.Create)

	admin := api.Group("/admin")
	admin.Post("/login", adminHandler.Login)

	// Public submissions that happen to live under /admin in the original
	// API surface.
	admin.Post("/reports", reportHandler.SubmitByEmail)
	admin.Post("/feedback", feedbackHandler.Create)

	admin.Get("/users", adminGuard, adminHandler.ListUsers)
	admin.Post("/users", adminGuard, adminHandler.CreateUser)
	admin.Put("/users/:id", adminGuard, adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminGuard, adminHandler.DeleteUser)

	admin.Get("/reports", adminGuard, reportHandler.ListPending)
	admin.Put("/reports/:id/resolve", adminGuard, reportHandler.Resolve)
	// Legacy path used by the dashboard's status dropdown.
	admin.Put("/reports/:id", adminGuard, reportHandler.Resolve)
	admin.Get("/resolved_reports", adminGuard, reportHandler.ListResolved)

	admin.Get("/feedback", adminGuard, feedbackHandler.List)
	admin.Delete("/feedback/:id", adminGuard, feedbackHandler.Delete)

	admin.Get("/stats", adminGuard, adminHandler.Stats)
}
