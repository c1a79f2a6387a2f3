package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/kafune/rede-guti/internal/config"
	"github.com/kafune/rede-guti/internal/handlers"
	"github.com/kafune/rede-guti/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	indicationHandler *handlers.IndicationHandler,
	churchHandler *handlers.ChurchHandler,
	municipalityHandler *handlers.MunicipalityHandler,
	publicHandler *handlers.PublicHandler,
	userHandler *handlers.UserHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Public self-signup behind the referral link (no auth)
	app.Get("/public/options", publicHandler.Options)
	app.Post("/public/indications", publicHandler.SignUp)

	// Login rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	protected := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(db)

	app.Get("/indications", protected, indicationHandler.List)
	app.Post("/indications", protected, admin, indicationHandler.Create)
	app.Delete("/indications/:id", protected, admin, indicationHandler.Delete)

	app.Get("/churches", protected, churchHandler.List)
	app.Post("/churches", protected, admin, churchHandler.Create)

	app.Get("/municipalities", protected, municipalityHandler.List)
	app.Post("/municipalities", protected, admin, municipalityHandler.Create)

	app.Get("/users", protected, admin, userHandler.List)
	app.Post("/users", protected, admin, userHandler.Create)
	app.Patch("/users/:id", protected, admin, userHandler.Update)
	app.Delete("/users/:id", protected, admin, userHandler.Delete)
}
