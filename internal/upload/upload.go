package upload

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureDir creates the uploads directory if it does not exist yet.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImage stores an uploaded file under dir and returns the stored
// filename. The name combines the form field with a uuid so repeated
// uploads never collide.
func SaveImage(c *fiber.Ctx, file *multipart.FileHeader, field, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := field + "-" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// PublicURL turns a stored filename into the absolute URL clients can fetch.
// Stored names carry no path, so the rewrite happens at read time.
func PublicURL(base, filename string) string {
	return base + "/public/uploads/" + filename
}
