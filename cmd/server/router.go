package main

import (
	"context"
	"strings"
	"time"

	"portfolio-pulse/cmd/server/handlers"
	authHandlers "portfolio-pulse/cmd/server/handlers/auth"
	contentHandlers "portfolio-pulse/cmd/server/handlers/content"
	"portfolio-pulse/cmd/server/handlers/httperr"
	"portfolio-pulse/cmd/server/middlewares"
	"portfolio-pulse/internal/clients/mongo"
	"portfolio-pulse/internal/config"
	"portfolio-pulse/internal/logger"
	authServices "portfolio-pulse/internal/services/auth"
	contentServices "portfolio-pulse/internal/services/content"
	"portfolio-pulse/internal/utils/crypto"

	_ "portfolio-pulse/docs" // Load swagger docs

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authServices.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authServices.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API prefix to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz)

	app.Get("/docs/*", swagger.HandlerDefault)

	app.Static("/", "./web-ui", fiber.Static{
		Browse: false,
		Index:  "index.html",
	})

	var api fiber.Router
	if cfg.RequestLoggingEnabled {
		api = app.Group("/api", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		api = app.Group("/api")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)

	limiterMW := middlewares.BuildRateLimiter(cfg.LoginRatePerMin, RateLimitExpiration)

	usersRepo, newUsersRepoErr := mongo.NewUsersRepo(ctx, mongo.DB())
	if newUsersRepoErr != nil {
		logger.L().Error("failed to create users repository", "error", newUsersRepoErr)
		panic(newUsersRepoErr)
	}
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	// Auth routes come first so /api/auth never falls through to the
	// collection wildcard.
	authGrp := api.Group("/auth")
	authGrp.Post("/login", limiterMW, authH.Login)
	authGrp.Post("/logout", jwtMiddleware, authH.Logout)
	authGrp.Get("/me", jwtMiddleware, handlers.Me)

	// Collection routes
	documentsRepo := mongo.NewDocumentsRepo(mongo.DB())
	contentSvc := contentServices.NewService(documentsRepo, cfg.CollectionsOpen, logger.L())
	contentH := contentHandlers.NewHandlers(contentSvc)

	api.Get("/:collection", contentH.List)
	api.Post("/:collection", jwtMiddleware, contentH.Create)
	api.Put("/:collection/:id", jwtMiddleware, contentH.Update)
	api.Delete("/:collection/:id", jwtMiddleware, contentH.Delete)

	// Anything else under /api is a structured 404
	api.Use(func(c *fiber.Ctx) error {
		return httperr.Fail(httperr.ErrNotFound)
	})

	return app
}
