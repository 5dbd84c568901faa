package user

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service ServiceInterface
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/users/register", h.register)
	app.Post("/api/v1/users/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/users/get/count", h.count)
	app.Get("/api/v1/users", h.getUsers)
	app.Get("/api/v1/users/:id", h.getUser)
	app.Delete("/api/v1/users/:id", h.deleteUser)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Email == "" || payload.Password == "" || payload.FirstName == "" || payload.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing required fields"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		IsAdmin:   payload.IsAdmin,
		Street:    payload.Street,
		Apartment: payload.Apartment,
		Zip:       payload.Zip,
		City:      payload.City,
		Country:   payload.Country,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "email already in use"})
		}
		log.Printf("user register failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not register user"})
	}

	token, err := signToken(created)
	if err != nil {
		log.Printf("token signing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  sanitizeUser(created),
		"token": token,
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid email or password"})
	}

	token, err := signToken(user)
	if err != nil {
		log.Printf("token signing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"user":  sanitizeUser(user),
		"token": token,
	})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		log.Printf("user list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list users"})
	}

	response := make([]User, 0, len(users))
	for _, user := range users {
		response = append(response, sanitizeUser(user))
	}
	return c.JSON(response)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	user, err := h.service.GetByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		log.Printf("user get failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load user"})
	}

	return c.JSON(sanitizeUser(user))
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	if err := h.service.Delete(userID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "user not found"})
		}
		log.Printf("user delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not delete user"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

func (h *Handler) count(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		log.Printf("user count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not count users"})
	}
	return c.JSON(fiber.Map{"userCount": count})
}

func signToken(user User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GetUserIDFromCtx extracts the user_id claim from the JWT token stored
// in `c.Locals("user")`. Several packages need this, so it lives here.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	raw, ok := claims["user_id"]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}

func sanitizeUser(user User) User {
	user.Password = ""
	return user
}
