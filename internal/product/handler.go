package product

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ashikReza/eshop-backend/internal/upload"
)

type Handler struct {
	service    ServiceInterface
	uploadsDir string
}

func NewHandler(s ServiceInterface, uploadsDir string) *Handler {
	return &Handler{service: s, uploadsDir: uploadsDir}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/get/count", h.count)
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:id", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.create)
	app.Put("/api/v1/products/:id", h.update)
	app.Delete("/api/v1/products/:id", h.delete)
	app.Post("/api/v1/products/:id/image", h.uploadImage)
}

type productRequest struct {
	Name         string          `json:"productName"`
	Description  string          `json:"productDesc"`
	Price        decimal.Decimal `json:"productPrice"`
	CategoryID   *int            `json:"categoryId"`
	CountInStock int             `json:"countInStock"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	// ?categories=1,2 narrows the list, mirroring the category filter
	// the storefront uses
	var categoryIDs []int
	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	products, err := h.service.List(categoryIDs)
	if err != nil {
		log.Printf("product list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list products"})
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, withUploadURL(c.BaseURL(), p))
	}
	return c.JSON(out)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		log.Printf("product get failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load product"})
	}

	return c.JSON(withUploadURL(c.BaseURL(), p))
}

func (h *Handler) create(c *fiber.Ctx) error {
	p, ok := h.parseProduct(c)
	if !ok {
		return nil // response already written
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := h.service.Create(p)
	if err != nil {
		if err == ErrInvalidPrice {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		log.Printf("product create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, ok := h.parseProduct(c)
	if !ok {
		return nil
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(id, p)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrInvalidPrice:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Printf("product update failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update product"})
		}
	}

	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "product not found"})
		}
		log.Printf("product delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not delete product"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}

func (h *Handler) count(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		log.Printf("product count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not count products"})
	}
	return c.JSON(fiber.Map{"productCount": count})
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		if file, err = c.FormFile("file"); err != nil || file == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
		}
	}

	stored, err := upload.SaveImage(c, file, "product", h.uploadsDir)
	if err != nil {
		log.Printf("product image upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not store uploaded file"})
	}

	if err := h.service.SetImage(id, stored); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		log.Printf("product image update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update product image"})
	}

	return c.JSON(fiber.Map{"productImg": upload.PublicURL(c.BaseURL(), stored)})
}

func (h *Handler) parseProduct(c *fiber.Ctx) (Product, bool) {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		return Product{}, false
	}
	if payload.Name == "" {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productName is required"})
		return Product{}, false
	}

	return Product{
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		CategoryID:   payload.CategoryID,
		CountInStock: payload.CountInStock,
	}, true
}

func withUploadURL(base string, p Product) Product {
	if p.Image != nil {
		u := upload.PublicURL(base, *p.Image)
		p.Image = &u
	}
	return p
}
