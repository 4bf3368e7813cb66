package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "altindan/internal/log"
	"altindan/internal/services"
	"altindan/internal/validate"
)

type OrderHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

// Form renders the order form for one product. Unknown products get a plain
// 404 body, matching what the storefront links expect.
func (h *OrderHandler) Form(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Mahsulot topilmadi")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Mahsulot topilmadi")
		}
		applog.Error(c, "order.form.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	lang := validate.Lang(c.Query("lang", "ru"))
	return c.Render("order", fiber.Map{"P": p, "Lang": lang})
}

// Submit records the order and renders the confirmation page. The response
// never waits on the group notification.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Mahsulot topilmadi")
	}
	if phone, ok := validate.Phone(c.FormValue("phone")); !ok && phone != "" {
		applog.Security(c, "validation.phone.odd", map[string]any{"product": id})
	}

	o, err := h.Orders.Submit(services.SubmitInput{
		ProductID: id,
		Name:      c.FormValue("name"),
		Phone:     c.FormValue("phone"),
		Qty:       c.FormValue("qty"),
		Note:      c.FormValue("note"),
		Lang:      c.FormValue("lang"),
	})
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Mahsulot topilmadi")
		}
		applog.Error(c, "order.submit.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save your order. Please try again."})
	}
	applog.Audit(c, "order.submit", map[string]any{"order_id": o.ID, "product": o.ProductID, "qty": o.Qty})
	return c.Render("ordered", fiber.Map{"Order": o, "Lang": o.Lang})
}
