package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "altindan/internal/log"
	"altindan/internal/services"
)

type APIHandler struct {
	Orders *services.OrderService
}

type apiOrderRequest struct {
	Product string `json:"product"`
	// qty arrives as a string or a bare number depending on the client
	Qty        any    `json:"qty"`
	Address    string `json:"address"`
	Time       string `json:"time"`
	Lang       string `json:"lang"`
	FromWebApp bool   `json:"fromWebApp"`
}

// CreateOrder is the JSON fallback used by the Telegram web-app front-end.
// Any failure answers 500 {"status":"error","err":...}; success answers
// {"status":"ok"}.
func (h *APIHandler) CreateOrder(c *fiber.Ctx) error {
	var req apiOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "err": "invalid payload"})
	}

	qty := ""
	if req.Qty != nil {
		qty = fmt.Sprint(req.Qty)
	}

	o, err := h.Orders.Submit(services.SubmitInput{
		ProductID: req.Product,
		Qty:       qty,
		Note:      req.Address,
		Lang:      req.Lang,
	})
	if err != nil {
		msg := "could not save order"
		if errors.Is(err, services.ErrProductNotFound) {
			msg = err.Error()
		} else {
			applog.Error(c, "api.order.fail", err, nil)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "err": msg})
	}
	applog.Audit(c, "api.order", map[string]any{"order_id": o.ID, "from_webapp": req.FromWebApp})
	return c.JSON(fiber.Map{"status": "ok"})
}
