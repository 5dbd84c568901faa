package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// makeApp wires the handler over the in-package fakes with a bootstrap
// middleware that injects a jwt.Token into locals when X-User-ID is
// provided, so tests do not need the full jwtware middleware.
func makeApp(repo *fakeRepo) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})

	handler := NewHandler(NewService(repo, testCatalog(), nil))
	handler.RegisterProtectedRoutes(app)
	return app
}

func TestCreateOrderEndpoint(t *testing.T) {
	repo := newFakeRepo()
	app := makeApp(repo)

	payload := `{
		"orderItems": [{"product":1,"quantity":2},{"product":2,"quantity":1}],
		"shippingAddress1": "12 Main St",
		"city": "Dhaka",
		"zip": "1207",
		"country": "BD",
		"phone": "555",
		"user": 7
	}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"totalPrice":"25.00"`) {
		t.Fatalf("response missing computed total: %s", body)
	}
	if !strings.Contains(body, `"orderItems"`) {
		t.Fatalf("response missing expanded items: %s", body)
	}
}

func TestCreateOrderDefaultsToAuthenticatedUser(t *testing.T) {
	repo := newFakeRepo()
	app := makeApp(repo)

	payload := `{"orderItems":[{"product":1,"quantity":1}],"shippingAddress1":"a","city":"b","zip":"c","country":"d","phone":"e"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "9")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	ord, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("created order missing: %v", err)
	}
	if ord.UserID != 9 {
		t.Fatalf("order should belong to the caller, got user %d", ord.UserID)
	}
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	app := makeApp(newFakeRepo())

	payload := `{"orderItems":[{"product":99,"quantity":1}],"user":7}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product, got %d", res.StatusCode)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	app := makeApp(newFakeRepo())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/5", nil))
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	app := makeApp(newFakeRepo())

	req := httptest.NewRequest("PUT", "/api/v1/orders/5", strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestOrderCountAndTotalSalesEndpoints(t *testing.T) {
	repo := newFakeRepo()
	app := makeApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/get/count", nil))
	if err != nil {
		t.Fatalf("count request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"orderCount":0`) {
		t.Fatalf("unexpected count body: %s", string(b))
	}

	res2, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/get/totalsales", nil))
	if err != nil {
		t.Fatalf("totalsales request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("empty order set must not fail totalsales, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"totalsales":"0"`) {
		t.Fatalf("unexpected totalsales body: %s", string(b2))
	}
}

func TestUsersOrdersEndpointFiltersByUser(t *testing.T) {
	repo := newFakeRepo()
	app := makeApp(repo)
	service := NewService(repo, testCatalog(), nil)

	if _, err := service.Create(Order{UserID: 7}, []ItemInput{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if _, err := service.Create(Order{UserID: 8}, []ItemInput{{ProductID: 2, Quantity: 1}}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/get/usersorders/7", nil))
	if err != nil {
		t.Fatalf("usersorders request failed: %v", err)
	}

	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"user":7`) || strings.Contains(body, `"user":8`) {
		t.Fatalf("user filter not applied: %s", body)
	}
}
