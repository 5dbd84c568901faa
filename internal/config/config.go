package config

import "os"

// Config holds everything the API reads from the environment.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	RabbitURL     string
	OrderExchange string
	UploadsDir    string
}

func Load() Config {
	return Config{
		Addr:          getEnv("ESHOP_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RabbitURL:     os.Getenv("RABBITMQ_URL"),
		OrderExchange: getEnv("ORDER_EXCHANGE", "orders_exchange"),
		UploadsDir:    getEnv("UPLOADS_DIR", "./public/uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
