package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"altindan/internal/bot"
	"altindan/internal/config"
	"altindan/internal/http/handlers"
	applog "altindan/internal/log"
	"altindan/internal/notify"
	"altindan/internal/repos"
	"altindan/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedCatalog(db, cfg.ProductsFile); err != nil {
		log.Fatal(err)
	}

	orderRepo := repos.NewOrderRepo(db)
	reportSvc := services.NewReportService(orderRepo, cfg.OrderGroupID)

	// The bot is optional: without a token the web server runs standalone
	// and the dispatcher degrades to a logged no-op.
	var sender notify.Sender
	if cfg.BotToken != "" {
		tgBot, err := bot.New(cfg.BotToken, cfg.WebURL, reportSvc)
		if err != nil {
			log.Printf("[warn] telegram bot disabled: %v", err)
		} else {
			sender = tgBot
			go tgBot.Run()
		}
	} else {
		log.Println("BOT_TOKEN not set — Telegram bot disabled.")
	}

	dispatcher := notify.NewDispatcher(sender, cfg.OrderGroupID)
	defer dispatcher.Close()

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg.WebURL, dispatcher)

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/order/:id", deps.OrderHandler.Form)
	app.Post("/order/:id", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.order.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many orders, please retry soon")
		},
	}), deps.OrderHandler.Submit)

	api := app.Group("/api")
	api.Post("/order", deps.APIHandler.CreateOrder)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
