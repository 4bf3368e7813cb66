package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "altindan/internal/log"
	"altindan/internal/services"
	"altindan/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	WebURL  string
}

// Home renders the catalog page. lang switches the uz/ru display names.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	lang := validate.Lang(c.Query("lang", "ru"))
	prods, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the menu"})
	}
	// Order links prefer the externally reachable URL so the page works
	// inside the Telegram web view.
	webURL := h.WebURL
	if webURL == "" {
		webURL = c.BaseURL()
	}
	return c.Render("index", fiber.Map{"Products": prods, "Lang": lang, "WebURL": webURL})
}
