package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashikReza/eshop-backend/internal/category"
	"github.com/ashikReza/eshop-backend/internal/config"
	"github.com/ashikReza/eshop-backend/internal/events"
	"github.com/ashikReza/eshop-backend/internal/metrics"
	"github.com/ashikReza/eshop-backend/internal/order"
	"github.com/ashikReza/eshop-backend/internal/product"
	"github.com/ashikReza/eshop-backend/internal/upload"
	"github.com/ashikReza/eshop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	publisher := newPublisher(cfg)
	defer publisher.Close()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if err := upload.EnsureDir(cfg.UploadsDir); err != nil {
		log.Fatalf("uploads dir: %v", err)
	}
	app.Static("/public/uploads", cfg.UploadsDir)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)), cfg.UploadsDir)
	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService, cfg.UploadsDir)
	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), productService, publisher))

	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	categoryHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// newPublisher connects to RabbitMQ when a broker URL is configured and
// falls back to a no-op publisher otherwise, so the API keeps serving
// without a broker.
func newPublisher(cfg config.Config) events.Publisher {
	if cfg.RabbitURL == "" {
		return events.NoopPublisher{}
	}
	p, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.OrderExchange)
	if err != nil {
		log.Printf("rabbitmq unavailable, order events disabled: %v", err)
		return events.NoopPublisher{}
	}
	return p
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userId" SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			"firstName" TEXT NOT NULL DEFAULT '',
			"lastName" TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			"isAdmin" BOOLEAN NOT NULL DEFAULT FALSE,
			street TEXT NOT NULL DEFAULT '',
			apartment TEXT NOT NULL DEFAULT '',
			zip TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			"createdAt" TEXT NOT NULL DEFAULT '',
			"updatedAt" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS category (
			"categoryId" SERIAL PRIMARY KEY,
			"categoryName" TEXT NOT NULL UNIQUE,
			color TEXT,
			icon TEXT,
			image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			"productId" SERIAL PRIMARY KEY,
			"productName" TEXT NOT NULL,
			"productDesc" TEXT NOT NULL DEFAULT '',
			"productPrice" NUMERIC NOT NULL DEFAULT 0,
			"categoryId" INT REFERENCES category("categoryId"),
			"productImg" TEXT,
			"countInStock" INT NOT NULL DEFAULT 0,
			"createdAt" TEXT NOT NULL DEFAULT '',
			"updatedAt" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			"orderId" SERIAL PRIMARY KEY,
			"shippingAddress1" TEXT NOT NULL DEFAULT '',
			"shippingAddress2" TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			zip TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			"totalPrice" NUMERIC NOT NULL DEFAULT 0,
			"userId" INT NOT NULL,
			"dateOrdered" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			"orderItemId" SERIAL PRIMARY KEY,
			"orderId" INT NOT NULL REFERENCES orders("orderId"),
			"productId" INT NOT NULL,
			quantity INT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("schema bootstrap failed: %v", err)
		}
	}
}
