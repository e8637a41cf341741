package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"docregistry/internal/config"
	"docregistry/internal/delivery/http/handler"
)

type Router struct {
	app           *fiber.App
	config        *config.Config
	draftHandler  *handler.DraftHandler
	submitHandler *handler.SubmitHandler
	masterHandler *handler.MasterHandler
	healthHandler *handler.HealthHandler
	logHandler    *handler.LogHandler
}

func NewRouter(
	cfg *config.Config,
	draftHandler *handler.DraftHandler,
	submitHandler *handler.SubmitHandler,
	masterHandler *handler.MasterHandler,
	healthHandler *handler.HealthHandler,
	logHandler *handler.LogHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
		// Drafts hold whole files in their multipart bodies
		BodyLimit: 50 * 1024 * 1024,
	})

	return &Router{
		app:           app,
		config:        cfg,
		draftHandler:  draftHandler,
		submitHandler: submitHandler,
		masterHandler: masterHandler,
		healthHandler: healthHandler,
		logHandler:    logHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// Log viewer route (HTML page)
	r.app.Get("/logs", r.logHandler.LogViewer)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		// Vocabulary routes
		api.Get("/master", r.masterHandler.GetVocabulary)
		api.Post("/master/refresh", r.masterHandler.RefreshVocabulary)

		// Draft editor routes
		drafts := api.Group("/drafts")
		{
			drafts.Get("", r.draftHandler.ListDrafts)
			drafts.Post("", r.draftHandler.AddDraft)
			drafts.Delete("/:id", r.draftHandler.RemoveDraft)
			drafts.Patch("/:id", r.draftHandler.UpdateField)
			drafts.Put("/:id/category", r.draftHandler.SetCategory)
			drafts.Put("/:id/renewal", r.draftHandler.ToggleRenewal)
			drafts.Post("/:id/files", r.draftHandler.AddFiles)
			drafts.Post("/:id/files/import", r.draftHandler.ImportFile)
			drafts.Delete("/:id/files/:index", r.draftHandler.RemoveFile)
			drafts.Delete("/:id/files", r.draftHandler.ClearFiles)
		}

		// Attachment inbox
		api.Get("/inbox", r.draftHandler.ListInbox)

		// Submission
		api.Post("/submit", r.submitHandler.Submit)

		// Log routes
		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.GetLogs)
			logs.Get("/search", r.logHandler.SearchLogs)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
