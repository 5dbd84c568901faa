package category

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ashikReza/eshop-backend/internal/upload"
)

// Handler exposes the category API. Create and update accept multipart
// bodies so the icon and image files travel with the form fields.
type Handler struct {
	service    *Service
	uploadsDir string
}

func NewHandler(s *Service, uploadsDir string) *Handler {
	return &Handler{service: s, uploadsDir: uploadsDir}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.list)
	app.Get("/api/v1/categories/:id", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/categories", h.create)
	app.Put("/api/v1/categories/:id", h.update)
	app.Delete("/api/v1/categories/:id", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	cats, err := h.service.List()
	if err != nil {
		log.Printf("category list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list categories"})
	}

	out := make([]Category, 0, len(cats))
	for _, cat := range cats {
		out = append(out, withUploadURLs(c.BaseURL(), cat))
	}
	return c.JSON(out)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}

	cat, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		}
		log.Printf("category get failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load category"})
	}

	return c.JSON(withUploadURLs(c.BaseURL(), cat))
}

func (h *Handler) create(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	cat := Category{Name: name}
	if color := c.FormValue("color"); color != "" {
		cat.Color = &color
	}

	for _, field := range []string{"icon", "image"} {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			continue
		}
		stored, err := upload.SaveImage(c, file, field, h.uploadsDir)
		if err != nil {
			log.Printf("category %s upload failed: %v", field, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not store uploaded file"})
		}
		if field == "icon" {
			cat.Icon = &stored
		} else {
			cat.Image = &stored
		}
	}

	created, err := h.service.Create(cat)
	if err != nil {
		if err == ErrNameExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "category name already in use"})
		}
		log.Printf("category create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create category"})
	}

	return c.Status(fiber.StatusCreated).JSON(withUploadURLs(c.BaseURL(), created))
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		}
		log.Printf("category update lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load category"})
	}

	if name := c.FormValue("name"); name != "" {
		existing.Name = name
	}
	if color := c.FormValue("color"); color != "" {
		existing.Color = &color
	}

	// files absent from the form keep their stored values
	for _, field := range []string{"icon", "image"} {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			continue
		}
		stored, err := upload.SaveImage(c, file, field, h.uploadsDir)
		if err != nil {
			log.Printf("category %s upload failed: %v", field, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not store uploaded file"})
		}
		if field == "icon" {
			existing.Icon = &stored
		} else {
			existing.Image = &stored
		}
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		switch err {
		case ErrNameExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "category name already in use"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		default:
			log.Printf("category update failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update category"})
		}
	}

	return c.JSON(withUploadURLs(c.BaseURL(), updated))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "category not found"})
		}
		log.Printf("category delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not delete category"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "category deleted"})
}

func withUploadURLs(base string, cat Category) Category {
	if cat.Icon != nil {
		u := upload.PublicURL(base, *cat.Icon)
		cat.Icon = &u
	}
	if cat.Image != nil {
		u := upload.PublicURL(base, *cat.Image)
		cat.Image = &u
	}
	return cat
}
