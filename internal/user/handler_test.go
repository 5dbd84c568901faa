package user

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp(seed []User) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	handler := NewHandler(NewService(repo))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app)
	return app, repo
}

func TestRegisterThenLogin(t *testing.T) {
	app, _ := makeApp(nil)

	payload := `{"email":"j@example.com","password":"secret","firstName":"Jenny","lastName":"Test","phone":"123"}`
	req := httptest.NewRequest("POST", "/api/v1/users/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, "token") {
		t.Fatalf("register response missing token: %s", body)
	}
	if strings.Contains(body, "secret") {
		t.Fatal("register response leaks the password")
	}

	loginReq := httptest.NewRequest("POST", "/api/v1/users/login", strings.NewReader(`{"email":"j@example.com","password":"secret"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRes, err := app.Test(loginReq)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if loginRes.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d", loginRes.StatusCode)
	}

	badReq := httptest.NewRequest("POST", "/api/v1/users/login", strings.NewReader(`{"email":"j@example.com","password":"wrong"}`))
	badReq.Header.Set("Content-Type", "application/json")
	badRes, _ := app.Test(badReq)
	if badRes.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on bad password, got %d", badRes.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	seed := []User{{ID: 1, Email: "j@example.com"}}
	app, repo := makeApp(seed)

	payload := `{"email":"j@example.com","password":"secret","firstName":"J","lastName":"T"}`
	req := httptest.NewRequest("POST", "/api/v1/users/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}

	users, _ := repo.List()
	if len(users) != 1 {
		t.Fatalf("duplicate register must not add a record, have %d", len(users))
	}
}

func TestUserListAndCount(t *testing.T) {
	seed := []User{
		{ID: 1, Email: "a@example.com", Password: "hash-a"},
		{ID: 2, Email: "b@example.com", Password: "hash-b"},
	}
	app, _ := makeApp(seed)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/users", nil))
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "hash-") {
		t.Fatalf("user list leaks password hashes: %s", string(b))
	}

	countRes, err := app.Test(httptest.NewRequest("GET", "/api/v1/users/get/count", nil))
	if err != nil {
		t.Fatalf("count request failed: %v", err)
	}
	cb, _ := io.ReadAll(countRes.Body)
	if !strings.Contains(string(cb), `"userCount":2`) {
		t.Fatalf("unexpected count body: %s", string(cb))
	}
}

func TestDeleteUser(t *testing.T) {
	seed := []User{{ID: 5, Email: "gone@example.com"}}
	app, repo := makeApp(seed)

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/users/5", nil))
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if _, err := repo.GetByID(5); err != ErrNotFound {
		t.Fatalf("user should be gone, got %v", err)
	}

	res2, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/users/5", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res2.StatusCode)
	}
}
