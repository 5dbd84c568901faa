package category

import (
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func strPtr(s string) *string { return &s }

func makeApp(seed []Category) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	handler := NewHandler(NewService(repo), "./uploads-test")
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app)
	return app, repo
}

func multipartBody(t *testing.T, fields map[string]string) (string, string) {
	t.Helper()
	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()
	return body.String(), writer.FormDataContentType()
}

func TestListRewritesUploadURLs(t *testing.T) {
	seed := []Category{{ID: 1, Name: "Toys", Icon: strPtr("icon-abc.png")}}
	app, _ := makeApp(seed)

	req := httptest.NewRequest("GET", "/api/v1/categories", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "/public/uploads/icon-abc.png") {
		t.Fatalf("icon URL not rewritten: %s", string(b))
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	app, _ := makeApp(nil)

	req := httptest.NewRequest("GET", "/api/v1/categories/99", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	seed := []Category{{ID: 1, Name: "Food"}}
	app, repo := makeApp(seed)

	body, ct := multipartBody(t, map[string]string{"name": "Food", "color": "#fff"})
	req := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", ct)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d", res.StatusCode)
	}

	cats, _ := repo.List()
	if len(cats) != 1 {
		t.Fatalf("duplicate create must not add a record, have %d", len(cats))
	}
}

func TestCreateAndUpdateCategory(t *testing.T) {
	app, repo := makeApp(nil)

	body, ct := multipartBody(t, map[string]string{"name": "Food", "color": "#0f0"})
	req := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", ct)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	// rename via update, keeping the color
	body2, ct2 := multipartBody(t, map[string]string{"name": "Dry food"})
	req2 := httptest.NewRequest("PUT", "/api/v1/categories/1", strings.NewReader(body2))
	req2.Header.Set("Content-Type", ct2)

	res2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on update, got %d", res2.StatusCode)
	}

	cat, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("updated category missing: %v", err)
	}
	if cat.Name != "Dry food" {
		t.Fatalf("name not updated: %+v", cat)
	}
	if cat.Color == nil || *cat.Color != "#0f0" {
		t.Fatalf("color should be retained on partial update: %+v", cat)
	}
}

func TestUpdateToExistingNameConflicts(t *testing.T) {
	seed := []Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Toys"}}
	app, _ := makeApp(seed)

	body, ct := multipartBody(t, map[string]string{"name": "Food"})
	req := httptest.NewRequest("PUT", "/api/v1/categories/2", strings.NewReader(body))
	req.Header.Set("Content-Type", ct)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}
}

func TestDeleteCategory(t *testing.T) {
	seed := []Category{{ID: 1, Name: "Food"}}
	app, repo := makeApp(seed)

	req := httptest.NewRequest("DELETE", "/api/v1/categories/1", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if _, err := repo.GetByID(1); err != ErrNotFound {
		t.Fatalf("category should be gone, got %v", err)
	}

	res2, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/categories/1", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res2.StatusCode)
	}
}
