package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/docs"
	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/services"
	"github.com/sirupsen/logrus"
)

// Limits configures the per-IP fixed-window limiters.
type Limits struct {
	Auth     int
	Donor    int
	Payment  int
	Provider int
	Window   time.Duration
}

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log       *logrus.Logger
	Metrics   *metrics.Metrics
	Storage   fiber.Storage
	Secret    []byte
	Cookie    controllers.CookieConfig
	Limits    Limits
	Origins   string
	UploadDir string

	Auth      *services.AuthService
	Users     *services.UserService
	Donors    *services.DonorService
	Providers *services.ProviderService
	Requests  *services.RequestService
}

// New builds the application with every route group mounted.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(d.Log),
		BodyLimit:    4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(d.Log, d.Metrics))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Origins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", controllers.Health)
	if err := docs.Register(app); err != nil {
		d.Log.WithError(err).Warn("api docs disabled")
	}
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}
	if d.UploadDir != "" {
		app.Static("/uploads", d.UploadDir)
	}

	protected := middleware.Protected(d.Secret)
	SetupAuthRoutes(app, d, protected)
	SetupDonorRoutes(app, d, protected)
	SetupProviderRoutes(app, d, protected)
	SetupRequestRoutes(app, d, protected)
	SetupProtectedRoutes(app, protected)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})
	return app
}
