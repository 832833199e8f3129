package fiber

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

const (
	corsMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsHeaders = "Origin, X-Requested-With, Content-Type, Accept, Authorization"
	corsMaxAge  = 86400
)

type ServerOptions struct {
	AppName       string
	AllowOrigins  string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	EnableMetrics bool
	EnableDocs    bool
}

// NewServer assembles the fiber app: middleware, system routes, the /api
// group and the optional /metrics and /docs routes.
func NewServer(opts ServerOptions, uc QueryAnalyticsUseCase, store Pinger) *fiber.App {
	origins := opts.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger())
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: logPanic,
	}))
	// credentials stay off: fiber refuses AllowCredentials with a wildcard origin
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: corsMethods,
		AllowHeaders: corsHeaders,
		MaxAge:       corsMaxAge,
	}))

	system := NewSystemHandler(store)
	app.Get("/", system.GetRoot)
	app.Get("/healthz", system.GetHealth)

	api := app.Group("/api")
	api.Use(preflight)
	NewAnalyticsHandler(uc).Register(api)

	if opts.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	if opts.EnableDocs {
		app.Get("/docs/*", fiberSwagger.WrapHandler)
	}

	return app
}
