package order

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ashikReza/eshop-backend/internal/metrics"
	"github.com/ashikReza/eshop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	// the /get/* routes must be registered before /:id so fiber does
	// not swallow them as an id parameter
	app.Get("/api/v1/orders/get/count", h.count)
	app.Get("/api/v1/orders/get/totalsales", h.totalSales)
	app.Get("/api/v1/orders/get/usersorders/:userid", h.listByUser)
	app.Get("/api/v1/orders", h.list)
	app.Get("/api/v1/orders/:id", h.get)
	app.Post("/api/v1/orders", h.create)
	app.Put("/api/v1/orders/:id", h.update)
	app.Delete("/api/v1/orders/:id", h.delete)
}

type createOrderRequest struct {
	OrderItems       []ItemInput `json:"orderItems"`
	ShippingAddress1 string      `json:"shippingAddress1"`
	ShippingAddress2 string      `json:"shippingAddress2"`
	City             string      `json:"city"`
	Zip              string      `json:"zip"`
	Country          string      `json:"country"`
	Phone            string      `json:"phone"`
	Status           string      `json:"status"`
	User             int         `json:"user"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	ok := false
	defer func() { metrics.RecordOrderOperation("create", ok) }()

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// orders placed without an explicit user belong to the caller
	userID := payload.User
	if userID == 0 {
		id, err := user.GetUserIDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		userID = id
	}

	created, err := h.service.Create(Order{
		ShippingAddress1: payload.ShippingAddress1,
		ShippingAddress2: payload.ShippingAddress2,
		City:             payload.City,
		Zip:              payload.Zip,
		Country:          payload.Country,
		Phone:            payload.Phone,
		Status:           payload.Status,
		UserID:           userID,
	}, payload.OrderItems)
	if err != nil {
		switch err {
		case ErrEmptyItems, ErrInvalidQuantity, ErrUnknownProduct:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Printf("order create failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create order"})
		}
	}

	ok = true
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	ok := false
	defer func() { metrics.RecordOrderOperation("update", ok) }()

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	patch := new(UpdatePatch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, *patch)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidQuantity, ErrUnknownProduct:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Printf("order update failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update order"})
		}
	}

	ok = true
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	ok := false
	defer func() { metrics.RecordOrderOperation("delete", ok) }()

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		}
		log.Printf("order delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not delete order"})
	}

	ok = true
	return c.JSON(fiber.Map{"success": true, "message": "order deleted"})
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		log.Printf("order list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list orders"})
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		log.Printf("order get failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load order"})
	}

	return c.JSON(ord)
}

func (h *Handler) listByUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		log.Printf("user orders list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list orders"})
	}
	return c.JSON(orders)
}

func (h *Handler) count(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		log.Printf("order count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not count orders"})
	}
	return c.JSON(fiber.Map{"orderCount": count})
}

func (h *Handler) totalSales(c *fiber.Ctx) error {
	total, err := h.service.TotalSales()
	if err != nil {
		log.Printf("total sales failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not compute total sales"})
	}
	return c.JSON(fiber.Map{"totalsales": total})
}
